package resource

import (
	"context"

	"ruru-backoffice/internal/domain"
)

// Descriptor parametrises a Table for one entity type.
type Descriptor[T any] struct {
	// Name is the resource key, e.g. "couriers".
	Name string
	// Fetch loads one page from the API.
	Fetch func(ctx context.Context, pr domain.PageRequest) (domain.Page[T], error)
	// ID returns the entity key used for selection and merging.
	ID func(T) string
	// SearchFields are matched by the free-text filter.
	SearchFields func(T) []string
	// Status returns the value matched by the status filter. Optional.
	Status func(T) string
}

func (d Descriptor[T]) status(v T) string {
	if d.Status == nil {
		return ""
	}
	return d.Status(v)
}
