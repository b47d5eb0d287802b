//go:generate mockgen -source=contracts.go -destination=leads_mocks_test.go -package=leads
package leads

import (
	"context"

	"ruru-backoffice/internal/domain"
)

// API is the public part of the Ruru API the lead forms post to.
type API interface {
	RequestLocalShipping(ctx context.Context, q domain.LocalQuote) error
	RequestInternationalShipping(ctx context.Context, q domain.InternationalQuote) error
	GetInTouch(ctx context.Context, m domain.ContactMessage) error
}
