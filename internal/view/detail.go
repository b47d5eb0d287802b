package view

import (
	"strconv"

	"ruru-backoffice/internal/domain"
	"ruru-backoffice/internal/service/admin"
)

// Field is a label/value pair in a detail modal.
type Field struct {
	Label string
	Value string
}

// DocumentView is a courier document in the detail modal.
type DocumentView struct {
	ID      int64
	Type    string
	URL     string
	Status  string
	Tone    string
	Comment string
}

// ActionView is a button in the detail modal.
type ActionView struct {
	Kind       string
	Label      string
	DocumentID int64
	Danger     bool
}

// Detail is the template model of a detail modal.
type Detail struct {
	ID        string
	Title     string
	Badge     string
	Tone      string
	Fields    []Field
	Documents []DocumentView
	History   []Field
	Actions   []ActionView
}

func actionViews(actions []admin.Action) []ActionView {
	out := make([]ActionView, 0, len(actions))
	for _, a := range actions {
		out = append(out, ActionView{
			Kind:       string(a.Kind),
			Label:      a.Label,
			DocumentID: a.DocumentID,
			Danger:     a.Kind == admin.ActionRejectDocument || a.Kind == admin.ActionDeactivate,
		})
	}
	return out
}

// CourierDetail builds the courier modal.
func CourierDetail(c domain.Courier) *Detail {
	d := &Detail{
		ID:    c.Key(),
		Title: c.CompanyName,
		Badge: Humanize(string(c.Status())),
		Tone:  StatusTone(string(c.Status())),
		Fields: []Field{
			{Label: "Email", Value: c.Email},
			{Label: "Phone", Value: c.Phone},
			{Label: "Address", Value: orDash(c.Address)},
			{Label: "Riders", Value: strconv.Itoa(c.RidersCount)},
			{Label: "Account", Value: admin.ActiveLabel(c.Active())},
			{Label: "Joined", Value: Date(c.CreatedAt)},
		},
		Actions: actionViews(admin.CourierActions(c)),
	}
	if c.User != nil {
		d.Fields = append(d.Fields, Field{Label: "Contact person", Value: c.User.FullName()})
	}
	for _, doc := range c.Documents {
		d.Documents = append(d.Documents, DocumentView{
			ID:      doc.ID,
			Type:    Humanize(doc.Type),
			URL:     doc.URL,
			Status:  Humanize(string(doc.Status)),
			Tone:    StatusTone(string(doc.Status)),
			Comment: doc.Comment,
		})
	}
	return d
}

func personFields(p domain.Person) []Field {
	return []Field{
		{Label: "Email", Value: p.Email},
		{Label: "Phone", Value: p.PhoneNumber},
		{Label: "NIN verified", Value: YesNo(p.IsNinVerified)},
		{Label: "Joined", Value: Date(p.CreatedAt)},
	}
}

// CustomerDetail builds the customer modal.
func CustomerDetail(c domain.Customer) *Detail {
	d := &Detail{
		ID:      c.Key(),
		Title:   c.FullName(),
		Badge:   admin.ActiveLabel(c.IsActive),
		Tone:    activeTone(c.IsActive),
		Fields:  personFields(c.Person),
		Actions: actionViews(admin.PersonActions(c.Person)),
	}
	d.Fields = append(d.Fields,
		Field{Label: "Transactions", Value: strconv.Itoa(c.TotalTransactions)},
		Field{Label: "Loyalty coins", Value: strconv.Itoa(c.LoyaltyCoins)},
	)
	return d
}

// RiderDetail builds the rider modal.
func RiderDetail(r domain.Rider) *Detail {
	d := &Detail{
		ID:      r.Key(),
		Title:   r.FullName(),
		Badge:   admin.ActiveLabel(r.IsActive),
		Tone:    activeTone(r.IsActive),
		Fields:  personFields(r.Person),
		Actions: actionViews(admin.PersonActions(r.Person)),
	}
	d.Fields = append(d.Fields,
		Field{Label: "Company", Value: orDash(r.CompanyName())},
		Field{Label: "Vehicle", Value: orDash(r.VehicleType)},
		Field{Label: "Plate number", Value: orDash(r.PlateNumber)},
	)
	return d
}

// TransactionDetail builds the read-only transaction modal.
func TransactionDetail(t domain.Transaction) *Detail {
	d := &Detail{
		ID:    t.Key(),
		Title: "Shipment " + t.TrackingID,
		Badge: Humanize(string(t.Status)),
		Tone:  StatusTone(string(t.Status)),
		Fields: []Field{
			{Label: "Pickup", Value: t.PickupAddress},
			{Label: "Drop-off", Value: t.DropoffAddress},
			{Label: "Sender", Value: t.SenderName + " (" + t.SenderPhone + ")"},
			{Label: "Receiver", Value: t.ReceiverName + " (" + t.ReceiverPhone + ")"},
			{Label: "Customer", Value: orDash(t.CustomerName())},
			{Label: "Courier", Value: orDash(t.CourierName())},
			{Label: "Rider", Value: orDash(t.RiderName())},
			{Label: "Package", Value: orDash(t.PackageDetails)},
			{Label: "Weight", Value: strconv.FormatFloat(t.Weight, 'f', -1, 64) + " kg"},
			{Label: "Declared value", Value: Naira(t.Value)},
			{Label: "Cost", Value: Naira(t.Cost)},
			{Label: "Express", Value: YesNo(t.IsExpress)},
			{Label: "Insured", Value: YesNo(t.IsInsurance)},
			{Label: "Paid", Value: YesNo(t.IsPaid)},
			{Label: "Booked", Value: DateTime(t.CreatedAt)},
		},
	}
	for _, h := range t.StatusHistories {
		d.History = append(d.History, Field{Label: Humanize(string(h.Status)), Value: DateTime(h.ChangedAt)})
	}
	return d
}

// Screens of the four admin tables.
var (
	CourierScreen = Screen[domain.Courier]{
		Title:    "Couriers",
		Columns:  CourierColumns(),
		ID:       domain.Courier.Key,
		Detail:   CourierDetail,
		Statuses: []string{"pending", "approved", "rejected"},
	}
	CustomerScreen = Screen[domain.Customer]{
		Title:    "Customers",
		Columns:  CustomerColumns(),
		ID:       func(c domain.Customer) string { return c.Key() },
		Detail:   CustomerDetail,
		Statuses: []string{admin.StatusActive, admin.StatusInactive},
	}
	RiderScreen = Screen[domain.Rider]{
		Title:    "Riders",
		Columns:  RiderColumns(),
		ID:       func(r domain.Rider) string { return r.Key() },
		Detail:   RiderDetail,
		Statuses: []string{admin.StatusActive, admin.StatusInactive},
	}
	TransactionScreen = Screen[domain.Transaction]{
		Title:    "Transactions",
		Columns:  TransactionColumns(),
		ID:       domain.Transaction.Key,
		Detail:   TransactionDetail,
		Statuses: []string{"pending", "in_transit", "completed", "cancelled"},
	}
)
