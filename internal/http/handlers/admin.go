package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"ruru-backoffice/internal/apperr"
	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/export"
	"ruru-backoffice/internal/logx"
	"ruru-backoffice/internal/resource"
	"ruru-backoffice/internal/service/admin"
	"ruru-backoffice/internal/session"
	"ruru-backoffice/internal/view"
)

const (
	msgDocumentApproved = "Document approved."
	msgDocumentRejected = "Document rejected."
	msgActivated        = "Account activated."
	msgDeactivated      = "Account deactivated."
	msgProfileSaved     = "Profile updated."
	msgPasswordChanged  = "Password changed."
)

// AdminDeps are the collaborators of AdminHandler.
type AdminDeps struct {
	Service  adminService
	API      APIFactory
	Spaces   *resource.Registry
	Sessions session.Store
	Cookie   Cookie
	Stale    counter
	PageSize int
}

// AdminHandler serves the signed-in back-office pages.
type AdminHandler struct {
	*Handlers
	svc      adminService
	api      APIFactory
	spaces   *resource.Registry
	sessions session.Store
	cookie   Cookie
	stale    counter
	pageSize int
	now      func() time.Time
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(h *Handlers, deps AdminDeps) *AdminHandler {
	if deps.PageSize <= 0 {
		deps.PageSize = 10
	}
	return &AdminHandler{
		Handlers: h,
		svc:      deps.Service,
		api:      deps.API,
		spaces:   deps.Spaces,
		sessions: deps.Sessions,
		cookie:   deps.Cookie,
		stale:    deps.Stale,
		pageSize: deps.PageSize,
		now:      time.Now,
	}
}

// request is the per-request admin context.
type request struct {
	sess session.Session
	api  admin.API
	ws   *resource.Workspace
}

func (h *AdminHandler) begin(r *http.Request) (request, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return request{}, false
	}
	return request{sess: s, api: h.api(s.Token), ws: h.spaces.Get(s.ID)}, true
}

func (h *AdminHandler) page(w http.ResponseWriter, r *http.Request, rq request, title, nav string) view.Data {
	d := h.data(w, r, title)
	d.Admin = true
	d.Nav = nav
	u := rq.sess.User
	d.User = &u
	return d
}

// expire ends a session the API no longer accepts.
func (h *AdminHandler) expire(w http.ResponseWriter, r *http.Request, rq request) {
	h.Logger.Info("session rejected by api", logx.String("session_id", rq.sess.ID))
	if err := h.sessions.Delete(r.Context(), rq.sess.ID); err != nil {
		h.Logger.Warn("session delete failed", logx.Err(err))
	}
	h.spaces.Drop(rq.sess.ID)
	h.cookie.clear(w)
	if wantsJSON(r) {
		writeError(h.Logger, w, r, http.StatusUnauthorized, msgExpired)
		return
	}
	h.setFlash(w, msgExpired)
	redirect(w, r, loginPath)
}

func (h *AdminHandler) unauthenticated(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeError(h.Logger, w, r, http.StatusUnauthorized, msgExpired)
		return
	}
	redirect(w, r, loginPath)
}

func (h *AdminHandler) pageRequest(r *http.Request) domain.PageRequest {
	q := r.URL.Query()
	return domain.PageRequest{Page: intParam(q, "page"), Limit: intParam(q, "limit")}.Normalize(h.pageSize)
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rq, ok := h.begin(r)
	if !ok {
		h.unauthenticated(w, r)
		return
	}
	rq.ws.Leave()

	dash, err := h.svc.Dashboard(r.Context(), rq.api)
	if errors.Is(err, apperr.Unauthorized) {
		h.expire(w, r, rq)
		return
	}
	if wantsJSON(r) {
		if err != nil {
			writeAppError(h.Logger, w, r, err)
			return
		}
		writeJSON(h.Logger, w, r, http.StatusOK, dash)
		return
	}
	d := h.page(w, r, rq, "Dashboard", "dashboard")
	if err != nil {
		d.Error = apperr.Message(err)
	}
	d.Body = dash
	h.html(w, r, http.StatusOK, view.PageDashboard, d)
}

// List handles GET /admin/{resource}.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	rq, ok := h.begin(r)
	if !ok {
		h.unauthenticated(w, r)
		return
	}
	switch chi.URLParam(r, "resource") {
	case admin.Couriers:
		serveList(h, w, r, rq, admin.CourierDescriptor(rq.api), view.CourierScreen)
	case admin.Customers:
		serveList(h, w, r, rq, admin.CustomerDescriptor(rq.api), view.CustomerScreen)
	case admin.Riders:
		serveList(h, w, r, rq, admin.RiderDescriptor(rq.api), view.RiderScreen)
	case admin.Transactions:
		serveList(h, w, r, rq, admin.TransactionDescriptor(rq.api), view.TransactionScreen)
	default:
		h.NotFound(w, r)
	}
}

// prepare opens the session's table for d and applies the query string:
// page, limit, search, status filter, and an explicit reload=1.
func prepare[T any](ctx context.Context, h *AdminHandler, r *http.Request, rq request, d resource.Descriptor[T]) (*resource.Table[T], error) {
	t := resource.Open(rq.ws, d, h.stale)
	q := r.URL.Query()
	t.SetQuery(q.Get("q"))
	t.SetStatus(q.Get("status"))

	pr := h.pageRequest(r)
	if q.Get("reload") == "1" || t.NeedsLoad(pr) {
		if err := t.Load(ctx, pr); err != nil && !errors.Is(err, resource.ErrStale) {
			return t, err
		}
	}
	return t, nil
}

func serveList[T any](h *AdminHandler, w http.ResponseWriter, r *http.Request, rq request, d resource.Descriptor[T], screen view.Screen[T]) {
	t, err := prepare(r.Context(), h, r, rq, d)
	if errors.Is(err, apperr.Unauthorized) {
		h.expire(w, r, rq)
		return
	}
	if err != nil {
		h.Logger.Warn("list load failed",
			logx.String("resource", d.Name),
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}

	if id := r.URL.Query().Get("view"); id != "" {
		if !t.Select(id) {
			t.CloseDetail()
		}
	} else {
		t.CloseDetail()
	}

	st := t.Snapshot()
	if wantsJSON(r) {
		writeJSON(h.Logger, w, r, http.StatusOK, st)
		return
	}
	page := h.page(w, r, rq, screen.Title, d.Name)
	page.Error = st.Error
	page.Body = view.BuildGrid(st, screen)
	h.html(w, r, http.StatusOK, view.PageTable, page)
}

// Export handles GET /admin/{resource}/export.xlsx: the filtered current page.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	rq, ok := h.begin(r)
	if !ok {
		h.unauthenticated(w, r)
		return
	}
	switch chi.URLParam(r, "resource") {
	case admin.Couriers:
		serveExport(h, w, r, rq, admin.CourierDescriptor(rq.api), view.CourierColumns())
	case admin.Customers:
		serveExport(h, w, r, rq, admin.CustomerDescriptor(rq.api), view.CustomerColumns())
	case admin.Riders:
		serveExport(h, w, r, rq, admin.RiderDescriptor(rq.api), view.RiderColumns())
	case admin.Transactions:
		serveExport(h, w, r, rq, admin.TransactionDescriptor(rq.api), view.TransactionColumns())
	default:
		h.NotFound(w, r)
	}
}

func serveExport[T any](h *AdminHandler, w http.ResponseWriter, r *http.Request, rq request, d resource.Descriptor[T], cols []view.Column[T]) {
	t, err := prepare(r.Context(), h, r, rq, d)
	if errors.Is(err, apperr.Unauthorized) {
		h.expire(w, r, rq)
		return
	}
	if err != nil {
		redirect(w, r, "/admin/"+d.Name+"?"+r.URL.RawQuery)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(d.Name, h.now())))
	if err := export.WriteXLSX(w, d.Name, cols, t.Filtered()); err != nil {
		h.Logger.Error("export failed", logx.String("resource", d.Name), logx.Err(err))
	}
}

// Action handles POST /admin/{resource}/{id}/actions.
func (h *AdminHandler) Action(w http.ResponseWriter, r *http.Request) {
	rq, ok := h.begin(r)
	if !ok {
		h.unauthenticated(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := r.ParseForm(); err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, "invalid form")
		return
	}
	res := chi.URLParam(r, "resource")
	id := chi.URLParam(r, "id")
	kind := admin.ActionKind(r.PostForm.Get("action"))
	actor := rq.sess.User

	var (
		updated any
		err     error
	)
	switch res {
	case admin.Couriers:
		call, callErr := h.courierCall(rq, actor, kind, r)
		updated, err = mutate(r.Context(), h, r, rq, admin.CourierDescriptor(rq.api), id, call, callErr)
	case admin.Customers:
		active, callErr := activationKind(kind)
		updated, err = mutate(r.Context(), h, r, rq, admin.CustomerDescriptor(rq.api), id, h.svc.SetCustomerActive(rq.api, actor, active), callErr)
	case admin.Riders:
		active, callErr := activationKind(kind)
		updated, err = mutate(r.Context(), h, r, rq, admin.RiderDescriptor(rq.api), id, h.svc.SetRiderActive(rq.api, actor, active), callErr)
	default:
		h.NotFound(w, r)
		return
	}

	if errors.Is(err, apperr.Unauthorized) {
		h.expire(w, r, rq)
		return
	}
	if wantsJSON(r) {
		if err != nil {
			writeAppError(h.Logger, w, r, err)
			return
		}
		writeJSON(h.Logger, w, r, http.StatusOK, map[string]any{"item": updated})
		return
	}
	if err == nil {
		h.setFlash(w, actionMessage(kind))
	}
	redirect(w, r, "/admin/"+res+"?"+r.URL.RawQuery)
}

func (h *AdminHandler) courierCall(rq request, actor domain.User, kind admin.ActionKind, r *http.Request) (func(context.Context, domain.Courier) (domain.Courier, error), error) {
	switch kind {
	case admin.ActionApproveDocument, admin.ActionRejectDocument:
		docID, err := strconv.ParseInt(r.PostForm.Get("documentId"), 10, 64)
		if err != nil || docID <= 0 {
			return nil, fmt.Errorf("document id %q: %w", r.PostForm.Get("documentId"), apperr.NotFound)
		}
		comment := strings.TrimSpace(r.PostForm.Get("comment"))
		return h.svc.VerifyDocument(rq.api, actor, docID, kind == admin.ActionApproveDocument, comment), nil
	case admin.ActionActivate, admin.ActionDeactivate:
		return h.svc.SetCourierActive(rq.api, actor, kind == admin.ActionActivate), nil
	}
	return nil, fmt.Errorf("courier action %q: %w", kind, apperr.Conflict)
}

func activationKind(kind admin.ActionKind) (bool, error) {
	switch kind {
	case admin.ActionActivate:
		return true, nil
	case admin.ActionDeactivate:
		return false, nil
	}
	return false, fmt.Errorf("action %q: %w", kind, apperr.Conflict)
}

func actionMessage(kind admin.ActionKind) string {
	switch kind {
	case admin.ActionApproveDocument:
		return msgDocumentApproved
	case admin.ActionRejectDocument:
		return msgDocumentRejected
	case admin.ActionActivate:
		return msgActivated
	default:
		return msgDeactivated
	}
}

// mutate runs call on the loaded entity id, loading the page first when the
// session has no table for it. A non-nil callErr means the action could not
// be built from the form; it is recorded on the table without calling out.
func mutate[T any](ctx context.Context, h *AdminHandler, r *http.Request, rq request, d resource.Descriptor[T], id string, call func(context.Context, T) (T, error), callErr error) (any, error) {
	t, err := prepare(ctx, h, r, rq, d)
	if err != nil {
		return nil, err
	}
	if callErr != nil {
		t.SetError(apperr.Message(callErr))
		h.Logger.Warn("admin action rejected",
			logx.String("resource", d.Name),
			logx.String("id", id),
			logx.Err(callErr),
		)
		return nil, callErr
	}
	updated, err := t.Mutate(ctx, id, call)
	if err != nil {
		if errors.Is(err, apperr.NotFound) {
			t.SetError(apperr.Message(err))
		}
		h.Logger.Warn("admin action failed",
			logx.String("resource", d.Name),
			logx.String("id", id),
			logx.Err(err),
		)
		return nil, err
	}
	return updated, nil
}

// Settings handles GET /admin/settings.
func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	rq, ok := h.begin(r)
	if !ok {
		h.unauthenticated(w, r)
		return
	}
	rq.ws.Leave()

	u, err := h.svc.Profile(r.Context(), rq.api)
	if errors.Is(err, apperr.Unauthorized) {
		h.expire(w, r, rq)
		return
	}
	d := h.page(w, r, rq, "Settings", "settings")
	if err != nil {
		u = rq.sess.User
		d.Error = apperr.Message(err)
	}
	if wantsJSON(r) {
		writeJSON(h.Logger, w, r, http.StatusOK, u)
		return
	}
	d.Form = profileForm(u)
	h.html(w, r, http.StatusOK, view.PageSettings, d)
}

// UpdateProfile handles POST /admin/settings/profile.
func (h *AdminHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	rq, ok := h.begin(r)
	if !ok {
		h.unauthenticated(w, r)
		return
	}
	var p domain.ProfileUpdate
	if isJSONBody(r) {
		if !decodeJSON(h.Logger, w, r, &p) {
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
		if err := r.ParseForm(); err != nil {
			writeError(h.Logger, w, r, http.StatusBadRequest, "invalid form")
			return
		}
		p = domain.ProfileUpdate{
			FirstName:   r.PostForm.Get("firstName"),
			LastName:    r.PostForm.Get("lastName"),
			Email:       r.PostForm.Get("email"),
			PhoneNumber: r.PostForm.Get("phoneNumber"),
		}
	}

	u, err := h.svc.UpdateProfile(r.Context(), rq.api, rq.sess.User, p)
	if errors.Is(err, apperr.Unauthorized) {
		h.expire(w, r, rq)
		return
	}
	if err != nil {
		h.settingsError(w, r, rq, err, map[string]string{
			"firstName": p.FirstName, "lastName": p.LastName, "email": p.Email, "phoneNumber": p.PhoneNumber,
		})
		return
	}

	rq.sess.User = u
	if err := h.sessions.Save(r.Context(), rq.sess); err != nil {
		h.Logger.Warn("session refresh failed", logx.Err(err))
	}
	if wantsJSON(r) || isJSONBody(r) {
		writeJSON(h.Logger, w, r, http.StatusOK, u)
		return
	}
	h.setFlash(w, msgProfileSaved)
	redirect(w, r, "/admin/settings")
}

// ChangePassword handles POST /admin/settings/password.
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	rq, ok := h.begin(r)
	if !ok {
		h.unauthenticated(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := r.ParseForm(); err != nil {
		writeError(h.Logger, w, r, http.StatusBadRequest, "invalid form")
		return
	}
	pc := domain.PasswordChange{
		CurrentPassword: r.PostForm.Get("currentPassword"),
		NewPassword:     r.PostForm.Get("newPassword"),
		ConfirmPassword: r.PostForm.Get("confirmPassword"),
	}
	err := h.svc.ChangePassword(r.Context(), rq.api, rq.sess.User, pc)
	if err != nil {
		// a wrong current password comes back as 401; keep the session
		h.settingsError(w, r, rq, err, profileForm(rq.sess.User))
		return
	}
	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.setFlash(w, msgPasswordChanged)
	redirect(w, r, "/admin/settings")
}

func (h *AdminHandler) settingsError(w http.ResponseWriter, r *http.Request, rq request, err error, form map[string]string) {
	if wantsJSON(r) || isJSONBody(r) {
		writeAppError(h.Logger, w, r, err)
		return
	}
	d := h.page(w, r, rq, "Settings", "settings")
	d.Error = apperr.Message(err)
	d.Fields = fieldErrors(err)
	d.Form = form
	h.html(w, r, statusOf(err), view.PageSettings, d)
}

func profileForm(u domain.User) map[string]string {
	return map[string]string{
		"firstName":   u.FirstName,
		"lastName":    u.LastName,
		"email":       u.Email,
		"phoneNumber": u.PhoneNumber,
	}
}
