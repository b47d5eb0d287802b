package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"

	"ruru-backoffice/internal/logx"
	"ruru-backoffice/internal/view"
)

// Handlers holds the ops endpoints and the shared page plumbing.
type Handlers struct {
	Logger logx.Logger
	render *view.Renderer
	flash  *Flash
}

// New creates a Handlers instance.
func New(logger logx.Logger, render *view.Renderer, flash *Flash) *Handlers {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Handlers{Logger: logger, render: render, flash: flash}
}

// Ping handles GET /ping and returns 200 with {"message":"pong"}.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead handles HEAD /healthcheck and returns 204 No Content.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// NotFound answers unknown routes with JSON or an error page.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) || h.render == nil {
		writeError(h.Logger, w, r, http.StatusNotFound, "route not found")
		return
	}
	d := h.data(w, r, "Page not found")
	d.Body = "The page you are looking for does not exist."
	h.html(w, r, http.StatusNotFound, view.PageError, d)
}

func (h *Handlers) data(w http.ResponseWriter, r *http.Request, title string) view.Data {
	d := view.Data{Title: title, CSRF: csrf.TemplateField(r)}
	if h.flash != nil {
		d.Flash = h.flash.Pop(w, r)
	}
	return d
}

func (h *Handlers) html(w http.ResponseWriter, r *http.Request, status int, page string, d view.Data) {
	if err := h.render.HTML(w, status, page, d); err != nil {
		h.Logger.Error("render failed",
			logx.String("req_id", reqID(r.Context())),
			logx.String("page", page),
			logx.Err(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handlers) setFlash(w http.ResponseWriter, msg string) {
	if h.flash != nil {
		h.flash.Set(w, msg)
	}
}
