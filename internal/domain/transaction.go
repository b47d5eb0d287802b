package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the shipment state of a transaction.
type TransactionStatus string

// Transaction states.
const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionInTransit TransactionStatus = "IN_TRANSIT"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// Valid reports whether s is a known status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionInTransit, TransactionCompleted, TransactionCancelled:
		return true
	}
	return false
}

// StatusHistory is one recorded status change of a transaction.
type StatusHistory struct {
	ID        int64             `json:"id"`
	Status    TransactionStatus `json:"status"`
	ChangedAt time.Time         `json:"changedAt"`
}

// Transaction is a shipment booked by a customer.
type Transaction struct {
	ID              int64             `json:"id"`
	TrackingID      string            `json:"trackingId"`
	PickupAddress   string            `json:"pickupAddress"`
	DropoffAddress  string            `json:"dropoffAddress"`
	SenderName      string            `json:"senderName"`
	SenderPhone     string            `json:"senderPhone"`
	ReceiverName    string            `json:"receiverName"`
	ReceiverPhone   string            `json:"receiverPhone"`
	Value           decimal.Decimal   `json:"value"`
	Cost            decimal.Decimal   `json:"cost"`
	Weight          float64           `json:"weight"`
	PackageDetails  string            `json:"packageDetails"`
	Status          TransactionStatus `json:"status"`
	IsExpress       bool              `json:"isExpress"`
	IsInsurance     bool              `json:"isInsurance"`
	IsPaid          bool              `json:"isPaid"`
	CreatedAt       time.Time         `json:"createdAt"`
	Customer        *Person           `json:"customer,omitempty"`
	CourierCompany  *CompanyRef       `json:"courierCompany,omitempty"`
	Rider           *Person           `json:"rider,omitempty"`
	StatusHistories []StatusHistory   `json:"statusHistories"`
}

// Key returns the id as a string.
func (t Transaction) Key() string { return strconv.FormatInt(t.ID, 10) }

// CustomerName returns the customer's full name or an empty string.
func (t Transaction) CustomerName() string {
	if t.Customer == nil {
		return ""
	}
	return t.Customer.FullName()
}

// CourierName returns the courier company name or an empty string.
func (t Transaction) CourierName() string {
	if t.CourierCompany == nil {
		return ""
	}
	return t.CourierCompany.CompanyName
}

// RiderName returns the rider's full name or an empty string.
func (t Transaction) RiderName() string {
	if t.Rider == nil {
		return ""
	}
	return t.Rider.FullName()
}
