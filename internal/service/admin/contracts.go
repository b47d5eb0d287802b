//go:generate mockgen -source=contracts.go -destination=admin_mocks_test.go -package=admin

package admin

import (
	"context"

	"ruru-backoffice/internal/domain"
)

// API is the part of the Ruru API the admin pages use.
type API interface {
	ListCouriers(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Courier], error)
	ListCustomers(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Customer], error)
	ListRiders(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Rider], error)
	ListTransactions(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Transaction], error)
	UpdateDocumentStatus(ctx context.Context, docID int64, isVerified bool, comment string) (*domain.Document, error)
	SetUserActive(ctx context.Context, userID int64, active bool) error
	Counts(ctx context.Context) (domain.Counts, error)
	UserDetails(ctx context.Context) (domain.User, error)
	UpdateProfile(ctx context.Context, p domain.ProfileUpdate) (domain.User, error)
	ChangePassword(ctx context.Context, current, next string) error
}
