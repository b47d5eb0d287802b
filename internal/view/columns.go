package view

import (
	"strconv"
	"strings"

	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/service/admin"
)

// Column is one column of a resource table. Tone, when set, renders the
// cell as a coloured badge.
type Column[T any] struct {
	Header string
	Value  func(T) string
	Tone   func(T) string
}

// Tone classes used by badges.
const (
	ToneGood    = "good"
	ToneBad     = "bad"
	TonePending = "pending"
	ToneInfo    = "info"
)

// StatusTone maps a status value to a badge tone.
func StatusTone(status string) string {
	switch strings.ToUpper(status) {
	case string(domain.CourierApproved), string(domain.TransactionCompleted), "ACTIVE":
		return ToneGood
	case string(domain.CourierRejected), string(domain.TransactionCancelled), "INACTIVE":
		return ToneBad
	case string(domain.TransactionInTransit):
		return ToneInfo
	default:
		return TonePending
	}
}

func activeTone(active bool) string {
	if active {
		return ToneGood
	}
	return ToneBad
}

// CourierColumns are the columns of the couriers table.
func CourierColumns() []Column[domain.Courier] {
	return []Column[domain.Courier]{
		{Header: "Company", Value: func(c domain.Courier) string { return c.CompanyName }},
		{Header: "Email", Value: func(c domain.Courier) string { return c.Email }},
		{Header: "Phone", Value: func(c domain.Courier) string { return c.Phone }},
		{Header: "Riders", Value: func(c domain.Courier) string { return strconv.Itoa(c.RidersCount) }},
		{
			Header: "Status",
			Value:  func(c domain.Courier) string { return Humanize(string(c.Status())) },
			Tone:   func(c domain.Courier) string { return StatusTone(string(c.Status())) },
		},
		{
			Header: "Account",
			Value:  func(c domain.Courier) string { return admin.ActiveLabel(c.Active()) },
			Tone:   func(c domain.Courier) string { return activeTone(c.Active()) },
		},
		{Header: "Joined", Value: func(c domain.Courier) string { return Date(c.CreatedAt) }},
	}
}

// CustomerColumns are the columns of the customers table.
func CustomerColumns() []Column[domain.Customer] {
	return []Column[domain.Customer]{
		{Header: "Name", Value: func(c domain.Customer) string { return c.FullName() }},
		{Header: "Email", Value: func(c domain.Customer) string { return c.Email }},
		{Header: "Phone", Value: func(c domain.Customer) string { return c.PhoneNumber }},
		{Header: "Transactions", Value: func(c domain.Customer) string { return strconv.Itoa(c.TotalTransactions) }},
		{Header: "Loyalty coins", Value: func(c domain.Customer) string { return strconv.Itoa(c.LoyaltyCoins) }},
		{
			Header: "Status",
			Value:  func(c domain.Customer) string { return admin.ActiveLabel(c.IsActive) },
			Tone:   func(c domain.Customer) string { return activeTone(c.IsActive) },
		},
		{Header: "Joined", Value: func(c domain.Customer) string { return Date(c.CreatedAt) }},
	}
}

// RiderColumns are the columns of the riders table.
func RiderColumns() []Column[domain.Rider] {
	return []Column[domain.Rider]{
		{Header: "Name", Value: func(r domain.Rider) string { return r.FullName() }},
		{Header: "Email", Value: func(r domain.Rider) string { return r.Email }},
		{Header: "Phone", Value: func(r domain.Rider) string { return r.PhoneNumber }},
		{Header: "Company", Value: func(r domain.Rider) string { return orDash(r.CompanyName()) }},
		{Header: "Vehicle", Value: func(r domain.Rider) string { return orDash(r.VehicleType) }},
		{
			Header: "Status",
			Value:  func(r domain.Rider) string { return admin.ActiveLabel(r.IsActive) },
			Tone:   func(r domain.Rider) string { return activeTone(r.IsActive) },
		},
		{Header: "Joined", Value: func(r domain.Rider) string { return Date(r.CreatedAt) }},
	}
}

// TransactionColumns are the columns of the transactions table.
func TransactionColumns() []Column[domain.Transaction] {
	return []Column[domain.Transaction]{
		{Header: "Tracking ID", Value: func(t domain.Transaction) string { return t.TrackingID }},
		{Header: "Customer", Value: func(t domain.Transaction) string { return orDash(t.CustomerName()) }},
		{Header: "Courier", Value: func(t domain.Transaction) string { return orDash(t.CourierName()) }},
		{Header: "Receiver", Value: func(t domain.Transaction) string { return t.ReceiverName }},
		{Header: "Cost", Value: func(t domain.Transaction) string { return Naira(t.Cost) }},
		{
			Header: "Status",
			Value:  func(t domain.Transaction) string { return Humanize(string(t.Status)) },
			Tone:   func(t domain.Transaction) string { return StatusTone(string(t.Status)) },
		},
		{Header: "Date", Value: func(t domain.Transaction) string { return Date(t.CreatedAt) }},
	}
}
