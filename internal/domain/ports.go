package domain

import "context"

// PaymentPort defines the interface for the external payment provider.
// This is a "port" in hexagonal architecture - the domain defines what it needs,
// and infrastructure provides the implementation. Implementations must translate
// every provider-specific failure into ErrProviderProcessing; the domain never
// sees provider exception types.
type PaymentPort interface {
	// CreatePaymentIntent registers a fully validated intent with the provider.
	// The returned intent carries the provider-assigned id, client secret,
	// status and creation time merged with the original customer/item context.
	CreatePaymentIntent(ctx context.Context, intent PaymentIntent) (*PaymentIntent, error)

	// GetPaymentIntent retrieves the provider's authoritative state of an intent.
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)

	// ConfirmPaymentIntent confirms an intent server-side.
	ConfirmPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)

	// CancelPaymentIntent cancels an intent.
	CancelPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)
}

// ProductRepository defines the persistence interface for the product catalog.
type ProductRepository interface {
	// FindAll returns every product, unfiltered.
	FindAll(ctx context.Context) ([]*Product, error)

	// FindByID returns ErrProductNotFound when the id does not exist.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindByCategory matches the category case-insensitively.
	FindByCategory(ctx context.Context, category string) ([]*Product, error)

	// Save inserts the product when it has no identity, assigning one,
	// and replaces the stored value otherwise.
	Save(ctx context.Context, product *Product) (*Product, error)

	// DeleteByID returns ErrProductNotFound when the id does not exist.
	DeleteByID(ctx context.Context, id int64) error

	// ExistsByID reports whether the id is present.
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// EventPublisher notifies downstream consumers about verified webhook events.
// Publication is best-effort; callers log failures and move on.
type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, event WebhookEvent, status PaymentStatus) error
}
