package domain

import (
	"strconv"
	"strings"
	"time"
)

// User is an account on the Ruru platform (admin, courier owner, rider or customer).
type User struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Person is the shape shared by customers and riders. The API spells the
// first name key "fristName"; it is kept on the wire as is.
type Person struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"fristName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phoneNumber"`
	IsActive      bool      `json:"isActive"`
	IsNinVerified bool      `json:"isNinVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FullName joins first and last name.
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Key returns the id as a string.
func (p Person) Key() string { return strconv.FormatInt(p.ID, 10) }

// CompanyRef is the short courier company form nested in other records.
type CompanyRef struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone,omitempty"`
}

// Customer is an app user who books deliveries.
type Customer struct {
	Person
	LoyaltyCoins      int `json:"loyaltyCoins"`
	TotalTransactions int `json:"totalTransactions"`
}

// WithActive returns a copy with the activation flag set.
func (c Customer) WithActive(active bool) Customer {
	c.IsActive = active
	return c
}

// Rider is a delivery rider attached to a courier company.
type Rider struct {
	Person
	CourierCompany *CompanyRef `json:"courierCompany,omitempty"`
	VehicleType    string      `json:"vehicleType,omitempty"`
	PlateNumber    string      `json:"plateNumber,omitempty"`
}

// WithActive returns a copy with the activation flag set.
func (r Rider) WithActive(active bool) Rider {
	r.IsActive = active
	return r
}

// CompanyName returns the rider's company name or an empty string.
func (r Rider) CompanyName() string {
	if r.CourierCompany == nil {
		return ""
	}
	return r.CourierCompany.CompanyName
}
