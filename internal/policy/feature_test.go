package policy

import (
	"testing"
	"time"

	"bazaar/internal/domain/models"
)

func TestIsEffectivelyFeatured(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	tests := []struct {
		name       string
		isFeatured bool
		expiration *time.Time
		want       bool
	}{
		{"featured with future expiration", true, &future, true},
		{"featured with past expiration", true, &past, false},
		{"featured with expiration equal to now", true, &now, false},
		{"featured with nil expiration", true, nil, false},
		{"not featured with future expiration", false, &future, false},
		{"not featured at all", false, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resource := models.ResourceDescriptor{
				Type:              models.ResourceDirectoryListing,
				ID:                "r-1",
				OwnerID:           "u-owner",
				State:             models.StatePublished,
				IsFeatured:        tt.isFeatured,
				FeatureExpiration: tt.expiration,
			}

			if got := IsEffectivelyFeatured(resource, now); got != tt.want {
				t.Errorf("IsEffectivelyFeatured() = %v, want %v", got, tt.want)
			}
		})
	}
}
