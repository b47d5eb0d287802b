package leads

import (
	"context"
	"strings"

	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/logx"
	"ruru-backoffice/internal/validation"
)

// Form names used in logs and metrics.
const (
	FormLocal         = "local"
	FormInternational = "international"
	FormContact       = "contact"
)

type submissionCounter interface {
	Inc(form, outcome string)
}

type nopCounter struct{}

func (nopCounter) Inc(string, string) {}

// Service validates lead forms and forwards them to the API.
type Service struct {
	api    API
	logger logx.Logger
	count  submissionCounter
}

// New creates a Service. count may be nil.
func New(api API, logger logx.Logger, count submissionCounter) *Service {
	if logger == nil {
		logger = logx.Nop()
	}
	if count == nil {
		count = nopCounter{}
	}
	return &Service{api: api, logger: logger, count: count}
}

// SubmitLocal sends a local shipping quote request. Nothing is sent when a
// required field is missing.
func (s *Service) SubmitLocal(ctx context.Context, q domain.LocalQuote) error {
	trimAll(&q.FullName, &q.Email, &q.Phone,
		&q.OriginCountry, &q.OriginState, &q.OriginCity,
		&q.DestinationCountry, &q.DestinationState, &q.DestinationCity,
		&q.Currency, &q.Weight, &q.ItemDescription, &q.Nature)
	q.Image = present(q.Image)
	if err := validation.Struct(q); err != nil {
		return err
	}
	return s.send(FormLocal, q.Email, func() error { return s.api.RequestLocalShipping(ctx, q) })
}

// SubmitInternational sends an international shipping quote request.
func (s *Service) SubmitInternational(ctx context.Context, q domain.InternationalQuote) error {
	trimAll(&q.FullName, &q.Email, &q.Phone, &q.Origin, &q.Destination,
		&q.Quantity, &q.Weight, &q.Value, &q.ItemDescription, &q.Nature)
	q.Image = present(q.Image)
	if err := validation.Struct(q); err != nil {
		return err
	}
	return s.send(FormInternational, q.Email, func() error { return s.api.RequestInternationalShipping(ctx, q) })
}

// SubmitContact sends the get-in-touch message.
func (s *Service) SubmitContact(ctx context.Context, m domain.ContactMessage) error {
	trimAll(&m.Name, &m.Email, &m.Subject, &m.Message)
	if err := validation.Struct(m); err != nil {
		return err
	}
	return s.send(FormContact, m.Email, func() error { return s.api.GetInTouch(ctx, m) })
}

func (s *Service) send(form, email string, call func() error) error {
	if err := call(); err != nil {
		s.count.Inc(form, "error")
		s.logger.Warn("lead submission failed", logx.String("form", form), logx.Err(err))
		return err
	}
	s.count.Inc(form, "ok")
	s.logger.Info("lead submitted", logx.String("form", form), logx.String("email", email))
	return nil
}

// present drops an upload with no filename: browsers send one for an
// untouched file input.
func present(u *domain.Upload) *domain.Upload {
	if u == nil || u.Filename == "" {
		return nil
	}
	return u
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
