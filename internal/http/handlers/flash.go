package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const flashCookie = "ruru_flash"

// Flash carries a one-shot message across a redirect in a signed cookie.
type Flash struct {
	sc     *securecookie.SecureCookie
	secure bool
}

// NewFlash signs flash cookies with hashKey.
func NewFlash(hashKey []byte, secure bool) *Flash {
	sc := securecookie.New(hashKey, nil)
	sc.MaxAge(60)
	return &Flash{sc: sc, secure: secure}
}

// Set stores msg for the next request.
func (f *Flash) Set(w http.ResponseWriter, msg string) {
	v, err := f.sc.Encode(flashCookie, msg)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    v,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending message and clears it.
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
	var msg string
	if err := f.sc.Decode(flashCookie, c.Value, &msg); err != nil {
		return ""
	}
	return msg
}
