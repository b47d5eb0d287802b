package admin

import (
	"context"
	"strings"

	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/resource"
)

// Person statuses used by the status filter and badges.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ActiveLabel is the badge text of an activation flag.
func ActiveLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func personStatus(active bool) string {
	if active {
		return StatusActive
	}
	return StatusInactive
}

// CourierDescriptor describes the couriers table.
func CourierDescriptor(api API) resource.Descriptor[domain.Courier] {
	return resource.Descriptor[domain.Courier]{
		Name: Couriers,
		Fetch: func(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Courier], error) {
			return api.ListCouriers(ctx, pr)
		},
		ID: domain.Courier.Key,
		SearchFields: func(c domain.Courier) []string {
			f := []string{c.CompanyName, c.Email, c.Phone}
			if c.User != nil {
				f = append(f, c.User.FullName(), c.User.Email)
			}
			return f
		},
		Status: func(c domain.Courier) string { return strings.ToLower(string(c.Status())) },
	}
}

// CustomerDescriptor describes the customers table.
func CustomerDescriptor(api API) resource.Descriptor[domain.Customer] {
	return resource.Descriptor[domain.Customer]{
		Name: Customers,
		Fetch: func(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Customer], error) {
			return api.ListCustomers(ctx, pr)
		},
		ID: func(c domain.Customer) string { return c.Key() },
		SearchFields: func(c domain.Customer) []string {
			return []string{c.FirstName, c.LastName, c.FullName(), c.Email, c.PhoneNumber}
		},
		Status: func(c domain.Customer) string { return personStatus(c.IsActive) },
	}
}

// RiderDescriptor describes the riders table.
func RiderDescriptor(api API) resource.Descriptor[domain.Rider] {
	return resource.Descriptor[domain.Rider]{
		Name: Riders,
		Fetch: func(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Rider], error) {
			return api.ListRiders(ctx, pr)
		},
		ID: func(r domain.Rider) string { return r.Key() },
		SearchFields: func(r domain.Rider) []string {
			return []string{r.FirstName, r.LastName, r.FullName(), r.Email, r.PhoneNumber, r.CompanyName(), r.PlateNumber}
		},
		Status: func(r domain.Rider) string { return personStatus(r.IsActive) },
	}
}

// TransactionDescriptor describes the transactions table.
func TransactionDescriptor(api API) resource.Descriptor[domain.Transaction] {
	return resource.Descriptor[domain.Transaction]{
		Name: Transactions,
		Fetch: func(ctx context.Context, pr domain.PageRequest) (domain.Page[domain.Transaction], error) {
			return api.ListTransactions(ctx, pr)
		},
		ID: domain.Transaction.Key,
		SearchFields: func(t domain.Transaction) []string {
			return []string{t.TrackingID, t.SenderName, t.ReceiverName, t.CustomerName(), t.CourierName()}
		},
		Status: func(t domain.Transaction) string { return strings.ToLower(string(t.Status)) },
	}
}
