package admin

import (
	"context"
	"strings"

	"ruru-backoffice/internal/audit"
	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/validation"
)

// Profile loads the signed-in admin's profile.
func (s *Service) Profile(ctx context.Context, api API) (domain.User, error) {
	return api.UserDetails(ctx)
}

// UpdateProfile validates and saves p. Nothing is sent when a field is missing.
func (s *Service) UpdateProfile(ctx context.Context, api API, actor domain.User, p domain.ProfileUpdate) (domain.User, error) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.TrimSpace(p.Email)
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	if err := validation.Struct(p); err != nil {
		return domain.User{}, err
	}
	u, err := api.UpdateProfile(ctx, p)
	s.record(ctx, actor, audit.ActionProfileUpdate, Settings, idString(actor.ID), "", err)
	if err != nil {
		return domain.User{}, err
	}
	if u.ID == 0 {
		u.ID = actor.ID
	}
	if u.Role == "" {
		u.Role = actor.Role
	}
	return u, nil
}

// ChangePassword validates the form and changes the password.
func (s *Service) ChangePassword(ctx context.Context, api API, actor domain.User, pc domain.PasswordChange) error {
	if err := validation.Struct(pc); err != nil {
		return err
	}
	err := api.ChangePassword(ctx, pc.CurrentPassword, pc.NewPassword)
	s.record(ctx, actor, audit.ActionPasswordChange, Settings, idString(actor.ID), "", err)
	return err
}
