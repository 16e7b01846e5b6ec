// Package payment implements the core business logic for payment processing.
// This is the service/use-case layer.
package payment

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/NaoufalElmeskini/wlad-lwe9t-back/internal/domain"
)

// Service orchestrates payment operations against the provider port and
// enforces the business rules the provider's API does not.
type Service struct {
	paymentPort domain.PaymentPort
	events      domain.EventPublisher
}

// NewService creates a new payment service with the required dependencies.
func NewService(paymentPort domain.PaymentPort, events domain.EventPublisher) *Service {
	return &Service{
		paymentPort: paymentPort,
		events:      events,
	}
}

// CreatePaymentIntent validates the intent and registers it with the provider.
// Validation runs before any external call; an inconsistent intent is never
// sent out. The returned intent carries the provider-assigned fields.
func (s *Service) CreatePaymentIntent(ctx context.Context, intent domain.PaymentIntent) (*domain.PaymentIntent, error) {
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	created, err := s.paymentPort.CreatePaymentIntent(ctx, intent)
	if err != nil {
		return nil, err
	}

	log.Printf("Created payment intent %s, amount: %d %s", created.ID, created.Amount, created.Currency)
	return created, nil
}

// GetPaymentIntent retrieves the provider's current state of an intent.
func (s *Service) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.PaymentIntent, error) {
	if strings.TrimSpace(paymentIntentID) == "" {
		return nil, domain.NewValidationError("payment intent ID is required")
	}

	return s.paymentPort.GetPaymentIntent(ctx, paymentIntentID)
}

// ConfirmPaymentIntent confirms an intent server-side.
//
// The provider's confirm call has no "only if not final" guard, so the rule is
// enforced here with a fetch-then-act sequence. A concurrent external state
// change between the two calls is an accepted race; the provider's own state
// machine is the final arbiter and a stale attempt surfaces as a provider error.
func (s *Service) ConfirmPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.PaymentIntent, error) {
	if strings.TrimSpace(paymentIntentID) == "" {
		return nil, domain.NewValidationError("payment intent ID is required")
	}

	current, err := s.paymentPort.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}

	if current.IsFinalState() {
		return nil, domain.NewPaymentError(domain.ErrStateConflict,
			fmt.Sprintf("payment intent %s is already in final state: %s", paymentIntentID, current.Status),
			"STATE_CONFLICT")
	}

	return s.paymentPort.ConfirmPaymentIntent(ctx, paymentIntentID)
}

// CancelPaymentIntent cancels an intent that is not yet finalized.
// Same fetch-then-act guard and race caveat as ConfirmPaymentIntent.
func (s *Service) CancelPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.PaymentIntent, error) {
	if strings.TrimSpace(paymentIntentID) == "" {
		return nil, domain.NewValidationError("payment intent ID is required")
	}

	current, err := s.paymentPort.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}

	if current.IsFinalState() {
		return nil, domain.NewPaymentError(domain.ErrStateConflict,
			fmt.Sprintf("cannot cancel payment intent %s in state: %s", paymentIntentID, current.Status),
			"STATE_CONFLICT")
	}

	return s.paymentPort.CancelPaymentIntent(ctx, paymentIntentID)
}

// ProcessWebhookEvent handles a provider notification whose signature was
// already verified at the API boundary. The provider is authoritative, so no
// local state changes here: the current intent state is fetched for the audit
// log and the event is republished for downstream consumers. Unrecognized
// event types are deliberately a no-op rather than an error.
func (s *Service) ProcessWebhookEvent(ctx context.Context, event domain.WebhookEvent) error {
	if strings.TrimSpace(event.Type) == "" {
		return domain.NewValidationError("event type is required")
	}

	intent, err := s.paymentPort.GetPaymentIntent(ctx, event.PaymentIntentID)
	if err != nil {
		return err
	}

	log.Printf("Webhook received: %s for payment %s (status: %s)", event.Type, event.PaymentIntentID, intent.Status)

	// Event-type-specific side effects (fulfillment, emails) attach here.
	if err := s.events.PublishPaymentEvent(ctx, event, intent.Status); err != nil {
		// Best-effort: downstream publication must not make the provider retry.
		log.Printf("Failed to publish payment event %s for %s: %v", event.Type, event.PaymentIntentID, err)
	}

	return nil
}
