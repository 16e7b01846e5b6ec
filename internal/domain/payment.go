package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// PaymentStatus represents the lifecycle state of a payment intent,
// as reported by the payment provider.
type PaymentStatus string

const (
	StatusRequiresPaymentMethod PaymentStatus = "REQUIRES_PAYMENT_METHOD"
	StatusRequiresConfirmation  PaymentStatus = "REQUIRES_CONFIRMATION"
	StatusRequiresAction        PaymentStatus = "REQUIRES_ACTION"
	StatusProcessing            PaymentStatus = "PROCESSING"
	StatusSucceeded             PaymentStatus = "SUCCEEDED"
	StatusCanceled              PaymentStatus = "CANCELED"
	StatusFailed                PaymentStatus = "FAILED"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)
)

// PaymentIntent represents a payment intention.
// Amounts are in the minor currency unit (cents). The ID and ClientSecret are
// assigned by the payment provider and are empty until the intent is created.
type PaymentIntent struct {
	ID           string        `json:"id"`
	Amount       int64         `json:"amount"`
	Currency     string        `json:"currency"`
	Status       PaymentStatus `json:"status"`
	CustomerInfo CustomerInfo  `json:"customer_info"`
	Items        []PaymentItem `json:"items"`
	ClientSecret string        `json:"client_secret,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// CustomerInfo holds the customer details attached to a payment intent.
type CustomerInfo struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone,omitempty"`
}

// PaymentItem is a single line item of a payment intent.
// Price is in the minor currency unit.
type PaymentItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// Validate checks the payment intent business rules. It runs locally, has no
// side effects, and must pass before the intent is sent to the provider.
func (p PaymentIntent) Validate() error {
	if p.Amount <= 0 {
		return NewValidationError("amount must be greater than zero")
	}

	if strings.TrimSpace(p.Currency) == "" {
		return NewValidationError("currency is required")
	}

	if !currencyPattern.MatchString(p.Currency) {
		return NewValidationError("currency must be a valid 3-letter ISO code (e.g., EUR, USD)")
	}

	if err := p.CustomerInfo.Validate(); err != nil {
		return err
	}

	if len(p.Items) == 0 {
		return NewValidationError("at least one item is required")
	}

	var calculatedAmount int64
	for _, item := range p.Items {
		if err := item.Validate(); err != nil {
			return err
		}
		calculatedAmount += item.Price * int64(item.Quantity)
	}

	if p.Amount != calculatedAmount {
		return NewValidationError(
			fmt.Sprintf("amount mismatch: expected %d but got %d", calculatedAmount, p.Amount))
	}

	return nil
}

// IsFinalState reports whether the intent reached a state from which no
// further transition is permitted (succeeded, canceled, or failed).
func (p PaymentIntent) IsFinalState() bool {
	return p.Status == StatusSucceeded ||
		p.Status == StatusCanceled ||
		p.Status == StatusFailed
}

// Validate checks the required customer fields.
func (c CustomerInfo) Validate() error {
	if !emailPattern.MatchString(c.Email) {
		return NewValidationError("valid email is required")
	}
	if strings.TrimSpace(c.FirstName) == "" {
		return NewValidationError("first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return NewValidationError("last name is required")
	}
	if strings.TrimSpace(c.Address) == "" {
		return NewValidationError("address is required")
	}
	if strings.TrimSpace(c.City) == "" {
		return NewValidationError("city is required")
	}
	if strings.TrimSpace(c.PostalCode) == "" {
		return NewValidationError("postal code is required")
	}
	return nil
}

// Validate checks a single line item.
func (i PaymentItem) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return NewValidationError("item ID is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return NewValidationError("item name is required")
	}
	if i.Quantity <= 0 {
		return NewValidationError("item quantity must be greater than zero")
	}
	if i.Price < 0 {
		return NewValidationError("item price must be non-negative")
	}
	return nil
}

// WebhookEvent is a provider notification that already passed signature
// verification at the API boundary.
type WebhookEvent struct {
	Type            string `json:"type"`
	PaymentIntentID string `json:"payment_intent_id"`
}
