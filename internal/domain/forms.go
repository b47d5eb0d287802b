package domain

import "io"

// Upload is a file attached to a form.
type Upload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// LocalQuote is the local shipping quote request.
type LocalQuote struct {
	FullName           string  `validate:"required" form:"fullName"`
	Email              string  `validate:"required" form:"email"`
	Phone              string  `validate:"required" form:"phone"`
	OriginCountry      string  `validate:"required" form:"fromCountry"`
	OriginState        string  `validate:"required" form:"fromState"`
	OriginCity         string  `validate:"required" form:"fromCity"`
	DestinationCountry string  `validate:"required" form:"toCountry"`
	DestinationState   string  `validate:"required" form:"toState"`
	DestinationCity    string  `validate:"required" form:"toCity"`
	Currency           string  `validate:"required" form:"currency"`
	Weight             string  `validate:"required" form:"estimatedWeight"`
	ItemDescription    string  `validate:"required" form:"itemDescription"`
	Nature             string  `validate:"required" form:"natureOfItem"`
	Image              *Upload `validate:"required" form:"itemImage"`
}

// InternationalQuote is the international shipping quote request.
type InternationalQuote struct {
	FullName        string  `validate:"required" form:"fullName"`
	Email           string  `validate:"required" form:"email"`
	Phone           string  `validate:"required" form:"phone"`
	Origin          string  `validate:"required" form:"origin"`
	Destination     string  `validate:"required" form:"destination"`
	Quantity        string  `validate:"required" form:"quantity"`
	Weight          string  `validate:"required" form:"weight"`
	Value           string  `validate:"required" form:"value"`
	ItemDescription string  `validate:"required" form:"itemDescription"`
	Nature          string  `validate:"required" form:"natureOfItem"`
	Image           *Upload `validate:"required" form:"itemImage"`
}

// ContactMessage is the "get in touch" form.
type ContactMessage struct {
	Name    string `json:"name" validate:"required" form:"name"`
	Email   string `json:"email" validate:"required" form:"email"`
	Subject string `json:"subject" validate:"required" form:"subject"`
	Message string `json:"message" validate:"required" form:"message"`
}

// ProfileUpdate is the settings page profile form.
type ProfileUpdate struct {
	FirstName   string `json:"firstName" validate:"required" form:"firstName"`
	LastName    string `json:"lastName" validate:"required" form:"lastName"`
	Email       string `json:"email" validate:"required" form:"email"`
	PhoneNumber string `json:"phoneNumber" validate:"required" form:"phoneNumber"`
}

// PasswordChange is the settings page password form.
type PasswordChange struct {
	CurrentPassword string `validate:"required" form:"currentPassword"`
	NewPassword     string `validate:"required,min=6" form:"newPassword"`
	ConfirmPassword string `validate:"required,eqfield=NewPassword" form:"confirmPassword"`
}
