package handlers

import (
	"context"

	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/service/admin"
	"ruru-backoffice/internal/service/auth"
	"ruru-backoffice/internal/session"
)

type authService interface {
	Login(ctx context.Context, c auth.Credentials) (session.Session, error)
	Current(ctx context.Context, id string) (session.Session, error)
	Logout(ctx context.Context, id string) error
}

// NewAuthService exposes the auth service to the handlers.
func NewAuthService(svc *auth.Service) authService {
	return svc
}

type leadService interface {
	SubmitLocal(ctx context.Context, q domain.LocalQuote) error
	SubmitInternational(ctx context.Context, q domain.InternationalQuote) error
	SubmitContact(ctx context.Context, m domain.ContactMessage) error
}

type adminService interface {
	Dashboard(ctx context.Context, api admin.API) (admin.Dashboard, error)
	Profile(ctx context.Context, api admin.API) (domain.User, error)
	UpdateProfile(ctx context.Context, api admin.API, actor domain.User, p domain.ProfileUpdate) (domain.User, error)
	ChangePassword(ctx context.Context, api admin.API, actor domain.User, pc domain.PasswordChange) error
	VerifyDocument(api admin.API, actor domain.User, docID int64, approve bool, comment string) func(context.Context, domain.Courier) (domain.Courier, error)
	SetCourierActive(api admin.API, actor domain.User, active bool) func(context.Context, domain.Courier) (domain.Courier, error)
	SetCustomerActive(api admin.API, actor domain.User, active bool) func(context.Context, domain.Customer) (domain.Customer, error)
	SetRiderActive(api admin.API, actor domain.User, active bool) func(context.Context, domain.Rider) (domain.Rider, error)
}

// APIFactory returns an API client acting with token.
type APIFactory func(token string) admin.API

type counter interface {
	Inc()
}
