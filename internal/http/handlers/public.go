package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ruru-backoffice/internal/apperr"
	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/logx"
	"ruru-backoffice/internal/view"
)

const (
	msgQuoteSent   = "Your quote request has been submitted. We will get back to you shortly."
	msgContactSent = "Thanks for reaching out. We will get back to you soon."
)

// PublicHandler serves the marketing pages and lead-capture forms.
type PublicHandler struct {
	*Handlers
	leads leadService
}

// NewPublicHandler creates a PublicHandler.
func NewPublicHandler(h *Handlers, leads leadService) *PublicHandler {
	return &PublicHandler{Handlers: h, leads: leads}
}

// Home handles GET /.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.html(w, r, http.StatusOK, view.PageHome, h.data(w, r, ""))
}

// Quote handles GET /quote.
func (h *PublicHandler) Quote(w http.ResponseWriter, r *http.Request) {
	h.html(w, r, http.StatusOK, view.PageQuote, h.data(w, r, "Get a quote"))
}

// LocalQuoteForm handles GET /quote/local.
func (h *PublicHandler) LocalQuoteForm(w http.ResponseWriter, r *http.Request) {
	h.html(w, r, http.StatusOK, view.PageQuoteLocal, h.data(w, r, "Local shipping"))
}

// InternationalQuoteForm handles GET /quote/international.
func (h *PublicHandler) InternationalQuoteForm(w http.ResponseWriter, r *http.Request) {
	h.html(w, r, http.StatusOK, view.PageQuoteIntl, h.data(w, r, "International shipping"))
}

// ContactForm handles GET /contact.
func (h *PublicHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.html(w, r, http.StatusOK, view.PageContact, h.data(w, r, "Contact us"))
}

// LocalQuote handles POST /quote/local (multipart).
func (h *PublicHandler) LocalQuote(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r, view.PageQuoteLocal, "Local shipping") {
		return
	}
	img, closeImg := upload(r)
	defer closeImg()

	f := r.FormValue
	q := domain.LocalQuote{
		FullName:           f("fullName"),
		Email:              f("email"),
		Phone:              f("phone"),
		OriginCountry:      f("fromCountry"),
		OriginState:        f("fromState"),
		OriginCity:         f("fromCity"),
		DestinationCountry: f("toCountry"),
		DestinationState:   f("toState"),
		DestinationCity:    f("toCity"),
		Currency:           f("currency"),
		Weight:             f("estimatedWeight"),
		ItemDescription:    f("itemDescription"),
		Nature:             f("natureOfItem"),
		Image:              img,
	}
	err := h.leads.SubmitLocal(r.Context(), q)
	h.finish(w, r, err, "/quote/local", view.PageQuoteLocal, "Local shipping", msgQuoteSent)
}

// InternationalQuote handles POST /quote/international (multipart).
func (h *PublicHandler) InternationalQuote(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r, view.PageQuoteIntl, "International shipping") {
		return
	}
	img, closeImg := upload(r)
	defer closeImg()

	f := r.FormValue
	q := domain.InternationalQuote{
		FullName:        f("fullName"),
		Email:           f("email"),
		Phone:           f("phone"),
		Origin:          f("origin"),
		Destination:     f("destination"),
		Quantity:        f("quantity"),
		Weight:          f("weight"),
		Value:           f("value"),
		ItemDescription: f("itemDescription"),
		Nature:          f("natureOfItem"),
		Image:           img,
	}
	err := h.leads.SubmitInternational(r.Context(), q)
	h.finish(w, r, err, "/quote/international", view.PageQuoteIntl, "International shipping", msgQuoteSent)
}

// Contact handles POST /contact as a form or JSON.
func (h *PublicHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var m domain.ContactMessage
	if isJSONBody(r) {
		if !decodeJSON(h.Logger, w, r, &m) {
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
		if err := r.ParseForm(); err != nil {
			h.formError(w, r, view.PageContact, "Contact us", apperr.Invalid)
			return
		}
		m = domain.ContactMessage{
			Name:    r.PostForm.Get("name"),
			Email:   r.PostForm.Get("email"),
			Subject: r.PostForm.Get("subject"),
			Message: r.PostForm.Get("message"),
		}
	}
	err := h.leads.SubmitContact(r.Context(), m)
	h.finish(w, r, err, "/contact", view.PageContact, "Contact us", msgContactSent)
}

// Terms handles GET /terms and GET /terms/{doc}.
func (h *PublicHandler) Terms(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "doc")
	if name == "" {
		name = view.TermsGeneral
	}
	page, ok, err := view.Terms(name)
	if err != nil {
		h.Logger.Error("terms render failed", logx.Err(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.NotFound(w, r)
		return
	}
	d := h.data(w, r, page.Title)
	d.Body = page
	h.html(w, r, http.StatusOK, view.PageTerms, d)
}

func (h *PublicHandler) parseMultipart(w http.ResponseWriter, r *http.Request, page, title string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, uploadLimit)
	err := r.ParseMultipartForm(uploadLimit)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return true
	}
	h.Logger.Warn("multipart parse failed", logx.Err(err))
	h.formError(w, r, page, title, apperr.FieldErrors{"itemImage": "The image could not be uploaded."})
	return false
}

// finish answers a form submission: redirect with a flash on success,
// otherwise the form again with the entered values and the error banner.
func (h *PublicHandler) finish(w http.ResponseWriter, r *http.Request, err error, back, page, title, okMsg string) {
	if err == nil {
		if wantsJSON(r) || isJSONBody(r) {
			writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": okMsg})
			return
		}
		h.setFlash(w, okMsg)
		redirect(w, r, back)
		return
	}
	h.formError(w, r, page, title, err)
}

func (h *PublicHandler) formError(w http.ResponseWriter, r *http.Request, page, title string, err error) {
	if wantsJSON(r) || isJSONBody(r) {
		writeAppError(h.Logger, w, r, err)
		return
	}
	d := h.data(w, r, title)
	d.Error = apperr.Message(err)
	d.Fields = fieldErrors(err)
	d.Form = formValues(r)
	h.html(w, r, statusOf(err), page, d)
}

// upload returns the submitted item image, or nil when none was attached.
func upload(r *http.Request) (*domain.Upload, func()) {
	file, hdr, err := r.FormFile("itemImage")
	if err != nil {
		return nil, func() {}
	}
	return &domain.Upload{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Content:     file,
	}, func() { _ = file.Close() }
}
