package handlers

import (
	"errors"
	"net/http"
	"time"

	"ruru-backoffice/internal/apperr"
	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/logx"
	"ruru-backoffice/internal/resource"
	"ruru-backoffice/internal/service/auth"
	"ruru-backoffice/internal/session"
	"ruru-backoffice/internal/view"
)

const (
	loginPath     = "/admin"
	dashboardPath = "/admin/dashboard"

	msgLoggedOut = "You have been logged out."
	msgExpired   = "Your session has expired. Please log in again."
)

// Cookie configures the admin session cookie.
type Cookie struct {
	Name   string
	Secure bool
}

func (c Cookie) set(w http.ResponseWriter, s session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    s.ID,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookie) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookie) id(r *http.Request) string {
	ck, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return ck.Value
}

// AuthHandler serves admin sign in and sign out.
type AuthHandler struct {
	*Handlers
	auth   authService
	cookie Cookie
	spaces *resource.Registry
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(h *Handlers, svc authService, cookie Cookie, spaces *resource.Registry) *AuthHandler {
	return &AuthHandler{Handlers: h, auth: svc, cookie: cookie, spaces: spaces}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// LoginPage handles GET /admin. A signed-in admin goes to the dashboard.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if id := h.cookie.id(r); id != "" {
		if _, err := h.auth.Current(r.Context(), id); err == nil {
			redirect(w, r, dashboardPath)
			return
		}
	}
	d := h.data(w, r, "Sign in")
	d.Admin = true
	h.html(w, r, http.StatusOK, view.PageLogin, d)
}

// Login handles POST /admin as a form or JSON.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if isJSONBody(r) {
		if !decodeJSON(h.Logger, w, r, &req) {
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
		if err := r.ParseForm(); err != nil {
			writeError(h.Logger, w, r, http.StatusBadRequest, "invalid form")
			return
		}
		req.Identifier = r.PostForm.Get("identifier")
		req.Password = r.PostForm.Get("password")
	}

	sess, err := h.auth.Login(r.Context(), auth.Credentials{Identifier: req.Identifier, Password: req.Password})
	if err != nil {
		if wantsJSON(r) || isJSONBody(r) {
			writeAppError(h.Logger, w, r, err)
			return
		}
		d := h.data(w, r, "Sign in")
		d.Admin = true
		d.Error = apperr.Message(err)
		d.Fields = fieldErrors(err)
		d.Form = map[string]string{"identifier": req.Identifier}
		h.html(w, r, statusOf(err), view.PageLogin, d)
		return
	}

	h.cookie.set(w, sess)
	if wantsJSON(r) || isJSONBody(r) {
		writeJSON(h.Logger, w, r, http.StatusOK, loginResponse{User: sess.User, ExpiresAt: sess.ExpiresAt})
		return
	}
	redirect(w, r, dashboardPath)
}

// LogoutConfirm handles GET /admin/logout.
func (h *AuthHandler) LogoutConfirm(w http.ResponseWriter, r *http.Request) {
	d := h.data(w, r, "Log out")
	d.Admin = true
	if s, ok := session.FromContext(r.Context()); ok {
		u := s.User
		d.User = &u
	}
	h.html(w, r, http.StatusOK, view.PageLogoutConfirm, d)
}

// Logout handles POST /admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id := h.cookie.id(r)
	if err := h.auth.Logout(r.Context(), id); err != nil {
		h.Logger.Error("logout failed", logx.String("req_id", reqID(r.Context())), logx.Err(err))
	}
	if h.spaces != nil && id != "" {
		h.spaces.Drop(id)
	}
	h.cookie.clear(w)
	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.setFlash(w, msgLoggedOut)
	redirect(w, r, loginPath)
}

// RequireSession resolves the session cookie and stores the session in the
// request context. Callers without a valid session go to the sign-in page.
func (h *AuthHandler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := h.cookie.id(r)
		sess, err := h.auth.Current(r.Context(), id)
		if err != nil && !errors.Is(err, apperr.Unauthorized) {
			writeAppError(h.Logger, w, r, err)
			return
		}
		if err != nil {
			if id != "" {
				h.cookie.clear(w)
				if h.spaces != nil {
					h.spaces.Drop(id)
				}
			}
			if wantsJSON(r) || isJSONBody(r) {
				writeError(h.Logger, w, r, http.StatusUnauthorized, msgExpired)
				return
			}
			if id != "" {
				h.setFlash(w, msgExpired)
			}
			redirect(w, r, loginPath)
			return
		}
		next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sess)))
	})
}
