package billing

import (
	"strings"

	"bazaar/internal/domain/models"
)

// NormalizeStatus maps a raw Stripe subscription status onto the account
// model's subscription states. Unknown statuses normalize to none so a new
// Stripe state never accidentally unlocks gated capabilities.
func NormalizeStatus(raw string) models.SubscriptionStatus {
	switch strings.TrimSpace(raw) {
	case "active":
		return models.SubscriptionActive
	case "trialing":
		return models.SubscriptionTrial
	case "past_due", "unpaid":
		return models.SubscriptionPastDue
	case "canceled", "incomplete_expired":
		return models.SubscriptionCanceled
	default:
		return models.SubscriptionNone
	}
}
