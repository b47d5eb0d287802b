//go:generate mockgen -source=contracts.go -destination=audit_mocks_test.go -package=audit_test

package audit

import "context"

// Publisher ships events to the audit stream.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Store persists audit events.
type Store interface {
	Insert(ctx context.Context, e Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
