package policy

import (
	"time"

	"bazaar/internal/domain/models"
)

// IsEffectivelyFeatured turns the stored feature-flag fields into the
// effective boolean at read time: a flag with a past or null expiration is
// effectively false. Lazy expiry - the stored flag is never mutated, so
// expired features silently stop surfacing without a background sweep job.
// Listing-ranking and UI code must call this rather than reading IsFeatured
// directly.
func IsEffectivelyFeatured(resource models.ResourceDescriptor, now time.Time) bool {
	return resource.IsFeatured &&
		resource.FeatureExpiration != nil &&
		resource.FeatureExpiration.After(now)
}
