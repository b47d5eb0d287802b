package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"ruru-backoffice/internal/domain"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Session is a signed-in admin: the API bearer token and the user it belongs to.
type Session struct {
	ID        string      `json:"id"`
	Token     string      `json:"token"`
	User      domain.User `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store persists sessions.
type Store interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// New creates a session for token. Expiry is the token's exp claim when it
// falls between now and now+ttl, otherwise now+ttl. A claim already in the
// past means the clocks disagree, so it is ignored.
func New(token string, user domain.User, now time.Time, ttl time.Duration) Session {
	exp := now.Add(ttl)
	if tokenExp, ok := TokenExpiry(token); ok && tokenExp.After(now) && tokenExp.Before(exp) {
		exp = tokenExp
	}
	return Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: exp,
	}
}

// TokenExpiry reads the exp claim of a JWT without verifying the signature.
// The API owns the signing key; the claim is only used to expire the cookie.
func TokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
