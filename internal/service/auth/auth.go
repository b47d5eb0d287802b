package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ruru-backoffice/internal/apperr"
	"ruru-backoffice/internal/gateway/ruru"
	"ruru-backoffice/internal/logx"
	"ruru-backoffice/internal/session"
	"ruru-backoffice/internal/validation"
)

// API is the login endpoint of the Ruru API.
type API interface {
	Login(ctx context.Context, identifier, password string) (ruru.LoginResult, error)
}

// Credentials is the login form.
type Credentials struct {
	Identifier string `validate:"required" form:"identifier"`
	Password   string `validate:"required" form:"password"`
}

// Service signs admins in and out.
type Service struct {
	api    API
	store  session.Store
	logger logx.Logger
	ttl    time.Duration
	now    func() time.Time
}

// New creates a Service. ttl caps the session lifetime.
func New(api API, store session.Store, logger logx.Logger, ttl time.Duration) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{api: api, store: store, logger: logger, ttl: ttl, now: time.Now}
}

// Login checks the credentials with the API and stores a session for the
// returned token. Nothing is stored when the API rejects the credentials.
func (s *Service) Login(ctx context.Context, c Credentials) (session.Session, error) {
	c.Identifier = strings.TrimSpace(c.Identifier)
	if err := validation.Struct(c); err != nil {
		return session.Session{}, err
	}

	res, err := s.api.Login(ctx, c.Identifier, c.Password)
	if err != nil {
		s.logger.Warn("login failed", logx.String("identifier", c.Identifier), logx.Err(err))
		return session.Session{}, err
	}

	sess := session.New(res.Token, res.User, s.now(), s.ttl)
	if err := s.store.Save(ctx, sess); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	s.logger.Info("admin signed in",
		logx.Int64("user_id", res.User.ID),
		logx.String("session_id", sess.ID),
		logx.Time("expires_at", sess.ExpiresAt),
	)
	return sess, nil
}

// Current returns the live session with id.
func (s *Service) Current(ctx context.Context, id string) (session.Session, error) {
	if id == "" {
		return session.Session{}, apperr.Unauthorized
	}
	sess, err := s.store.Get(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return session.Session{}, fmt.Errorf("session %s: %w", id, apperr.Unauthorized)
	}
	if err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// Logout deletes the session with id.
func (s *Service) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Info("admin signed out", logx.String("session_id", id))
	return nil
}
