// Package stripe implements the PaymentPort interface using the official
// Stripe SDK. Infrastructure adapter for the payment provider boundary.
package stripe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
	stripesdk "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// Adapter implements domain.PaymentPort against the Stripe API.
type Adapter struct {
	sc *client.API
}

// NewAdapter creates a Stripe adapter with its own API client.
func NewAdapter(apiKey string) *Adapter {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return &Adapter{sc: sc}
}

// CreatePaymentIntent registers the intent with Stripe. The customer and line
// items of the incoming intent are merged into the returned value, since
// Stripe only echoes back its own fields.
func (a *Adapter) CreatePaymentIntent(ctx context.Context, intent domain.PaymentIntent) (*domain.PaymentIntent, error) {
	customerID, err := a.createCustomer(ctx, intent.CustomerInfo)
	if err != nil {
		return nil, err
	}

	params := &stripesdk.PaymentIntentParams{
		Params:   stripesdk.Params{Context: ctx},
		Amount:   stripesdk.Int64(intent.Amount),
		Currency: stripesdk.String(strings.ToLower(intent.Currency)),
		Customer: stripesdk.String(customerID),
		AutomaticPaymentMethods: &stripesdk.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripesdk.Bool(true),
		},
	}
	addMetadata(params, intent)

	pi, err := a.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, providerError("failed to create payment intent", err)
	}

	created := mapToDomain(pi)
	created.CustomerInfo = intent.CustomerInfo
	created.Items = intent.Items
	return created, nil
}

// GetPaymentIntent retrieves the intent's authoritative state from Stripe.
func (a *Adapter) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.PaymentIntent, error) {
	pi, err := a.sc.PaymentIntents.Get(paymentIntentID, &stripesdk.PaymentIntentParams{
		Params: stripesdk.Params{Context: ctx},
	})
	if err != nil {
		return nil, providerError("failed to retrieve payment intent", err)
	}

	return mapToDomain(pi), nil
}

// ConfirmPaymentIntent confirms the intent server-side.
func (a *Adapter) ConfirmPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.PaymentIntent, error) {
	pi, err := a.sc.PaymentIntents.Confirm(paymentIntentID, &stripesdk.PaymentIntentConfirmParams{
		Params: stripesdk.Params{Context: ctx},
	})
	if err != nil {
		return nil, providerError("failed to confirm payment intent", err)
	}

	return mapToDomain(pi), nil
}

// CancelPaymentIntent cancels the intent.
func (a *Adapter) CancelPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.PaymentIntent, error) {
	pi, err := a.sc.PaymentIntents.Cancel(paymentIntentID, &stripesdk.PaymentIntentCancelParams{
		Params: stripesdk.Params{Context: ctx},
	})
	if err != nil {
		return nil, providerError("failed to cancel payment intent", err)
	}

	return mapToDomain(pi), nil
}

// createCustomer creates a Stripe customer from the domain customer info.
func (a *Adapter) createCustomer(ctx context.Context, info domain.CustomerInfo) (string, error) {
	params := &stripesdk.CustomerParams{
		Params: stripesdk.Params{Context: ctx},
		Email:  stripesdk.String(info.Email),
		Name:   stripesdk.String(info.FirstName + " " + info.LastName),
		Address: &stripesdk.AddressParams{
			Line1:      stripesdk.String(info.Address),
			City:       stripesdk.String(info.City),
			PostalCode: stripesdk.String(info.PostalCode),
		},
	}
	if info.Phone != "" {
		params.Phone = stripesdk.String(info.Phone)
	}

	customer, err := a.sc.Customers.New(params)
	if err != nil {
		return "", providerError("failed to create customer", err)
	}
	return customer.ID, nil
}

// addMetadata attaches the line items and customer context to the Stripe
// intent, so the order is reconstructible from the provider's dashboard.
func addMetadata(params *stripesdk.PaymentIntentParams, intent domain.PaymentIntent) {
	for i, item := range intent.Items {
		prefix := fmt.Sprintf("item_%d_", i)
		params.AddMetadata(prefix+"id", item.ID)
		params.AddMetadata(prefix+"name", item.Name)
		params.AddMetadata(prefix+"quantity", fmt.Sprintf("%d", item.Quantity))
		params.AddMetadata(prefix+"price", fmt.Sprintf("%d", item.Price))
	}
	params.AddMetadata("customer_email", intent.CustomerInfo.Email)
	params.AddMetadata("customer_name", intent.CustomerInfo.FirstName+" "+intent.CustomerInfo.LastName)
}

// mapToDomain converts a Stripe PaymentIntent to the domain model.
func mapToDomain(pi *stripesdk.PaymentIntent) *domain.PaymentIntent {
	return &domain.PaymentIntent{
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     strings.ToUpper(string(pi.Currency)),
		Status:       MapStatus(string(pi.Status)),
		ClientSecret: pi.ClientSecret,
		CreatedAt:    time.Unix(pi.Created, 0).UTC(),
	}
}

// MapStatus maps a Stripe status string to the domain PaymentStatus.
// Unknown provider statuses are treated as failed.
func MapStatus(stripeStatus string) domain.PaymentStatus {
	switch stripeStatus {
	case "requires_payment_method":
		return domain.StatusRequiresPaymentMethod
	case "requires_confirmation":
		return domain.StatusRequiresConfirmation
	case "requires_action":
		return domain.StatusRequiresAction
	case "processing":
		return domain.StatusProcessing
	case "succeeded":
		return domain.StatusSucceeded
	case "canceled":
		return domain.StatusCanceled
	default:
		return domain.StatusFailed
	}
}

// providerError translates any Stripe failure into the single processing-failure
// error kind the domain understands, preserving the cause for diagnostics.
func providerError(message string, err error) error {
	return domain.NewPaymentError(domain.ErrProviderProcessing,
		message+": "+err.Error(), "PROVIDER_ERROR")
}
