package repositories

import (
	"context"

	"bazaar/internal/domain/models"
)

// AccountRepository reads and updates account rows. Subscription status is
// written only by the billing webhook; everything else treats it as read-only.
type AccountRepository interface {
	// GetByID retrieves an account by its id.
	// Returns domain.ErrNotFound when no row exists.
	GetByID(ctx context.Context, id string) (*models.Account, error)

	// GetByStripeCustomerID retrieves the account linked to a Stripe customer
	GetByStripeCustomerID(ctx context.Context, customerID string) (*models.Account, error)

	// UpdateSubscription writes the normalized subscription status and the
	// current subscription id (nil clears it)
	UpdateSubscription(ctx context.Context, id string, status models.SubscriptionStatus, subscriptionID *string) error
}
