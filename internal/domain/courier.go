package domain

import (
	"strconv"
	"time"
)

type (
	// DocumentStatus is the verification state of a courier compliance document.
	DocumentStatus string
	// CourierStatus is the approval state shown on the courier pages.
	CourierStatus string
)

// Document verification states.
const (
	DocumentPending  DocumentStatus = "PENDING"
	DocumentApproved DocumentStatus = "APPROVED"
	DocumentRejected DocumentStatus = "REJECTED"
)

// Courier approval states.
const (
	CourierPending  CourierStatus = "PENDING"
	CourierApproved CourierStatus = "APPROVED"
	CourierRejected CourierStatus = "REJECTED"
)

// Document is a compliance document uploaded by a courier company.
type Document struct {
	ID      int64          `json:"id"`
	Type    string         `json:"type"`
	URL     string         `json:"url"`
	Status  DocumentStatus `json:"status"`
	Comment string         `json:"comment,omitempty"`
}

// Courier is a courier company registered on the platform.
type Courier struct {
	ID          int64      `json:"id"`
	CompanyName string     `json:"companyName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address,omitempty"`
	IsVerified  bool       `json:"isVerified"`
	User        *User      `json:"user,omitempty"`
	Documents   []Document `json:"documents"`
	RidersCount int        `json:"ridersCount"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Key returns the courier id as a string.
func (c Courier) Key() string { return strconv.FormatInt(c.ID, 10) }

// Status derives the approval state: verified couriers are approved, a
// rejected document marks the courier rejected, anything else is pending.
func (c Courier) Status() CourierStatus {
	if c.IsVerified {
		return CourierApproved
	}
	for _, d := range c.Documents {
		if d.Status == DocumentRejected {
			return CourierRejected
		}
	}
	return CourierPending
}

// Active reports whether the courier's login account is active.
func (c Courier) Active() bool {
	return c.User != nil && c.User.IsActive
}

// Document returns the document with the given id.
func (c Courier) Document(id int64) (Document, bool) {
	for _, d := range c.Documents {
		if d.ID == id {
			return d, true
		}
	}
	return Document{}, false
}

// WithDocument returns a copy of c with the document of the same id replaced.
// Sibling documents are left as they are.
func (c Courier) WithDocument(doc Document) Courier {
	docs := make([]Document, len(c.Documents))
	copy(docs, c.Documents)
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = doc
		}
	}
	c.Documents = docs
	return c
}

// WithActive returns a copy of c with the account activation flag set.
func (c Courier) WithActive(active bool) Courier {
	if c.User == nil {
		return c
	}
	u := *c.User
	u.IsActive = active
	c.User = &u
	return c
}
