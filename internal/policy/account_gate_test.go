package policy

import (
	"testing"

	"bazaar/internal/domain/models"
)

func newTestGate(t *testing.T) *AccountGate {
	t.Helper()
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return NewAccountGate(registry)
}

func TestAccountGateCanPerform(t *testing.T) {
	gate := newTestGate(t)

	tests := []struct {
		name        string
		accountType models.AccountType
		status      models.SubscriptionStatus
		capability  Capability
		wantAllowed bool
		wantReason  Reason
	}{
		{
			name:        "active product_seller creates product",
			accountType: models.AccountTypeProductSeller,
			status:      models.SubscriptionActive,
			capability:  CapabilityCreateProduct,
			wantAllowed: true,
		},
		{
			name:        "past_due product_seller cannot create product",
			accountType: models.AccountTypeProductSeller,
			status:      models.SubscriptionPastDue,
			capability:  CapabilityCreateProduct,
			wantAllowed: false,
			wantReason:  ReasonSubscriptionRequired,
		},
		{
			name:        "provider cannot create product",
			accountType: models.AccountTypeProvider,
			status:      models.SubscriptionActive,
			capability:  CapabilityCreateProduct,
			wantAllowed: false,
			wantReason:  ReasonInsufficientAccountType,
		},
		{
			name:        "active provider creates provider profile",
			accountType: models.AccountTypeProvider,
			status:      models.SubscriptionActive,
			capability:  CapabilityCreateProviderProfile,
			wantAllowed: true,
		},
		{
			name:        "provider on trial cannot create provider profile",
			accountType: models.AccountTypeProvider,
			status:      models.SubscriptionTrial,
			capability:  CapabilityCreateProviderProfile,
			wantAllowed: false,
			wantReason:  ReasonSubscriptionRequired,
		},
		{
			name:        "active product_seller creates blog post",
			accountType: models.AccountTypeProductSeller,
			status:      models.SubscriptionActive,
			capability:  CapabilityCreateBlogPost,
			wantAllowed: true,
		},
		{
			name:        "regular cannot create blog post",
			accountType: models.AccountTypeRegular,
			status:      models.SubscriptionActive,
			capability:  CapabilityCreateBlogPost,
			wantAllowed: false,
			wantReason:  ReasonInsufficientAccountType,
		},
		{
			name:        "provider on trial creates directory listing",
			accountType: models.AccountTypeProvider,
			status:      models.SubscriptionTrial,
			capability:  CapabilityCreateDirectoryListing,
			wantAllowed: true,
		},
		{
			name:        "canceled provider cannot create directory listing",
			accountType: models.AccountTypeProvider,
			status:      models.SubscriptionCanceled,
			capability:  CapabilityCreateDirectoryListing,
			wantAllowed: false,
			wantReason:  ReasonSubscriptionRequired,
		},
		{
			name:        "regular cannot create directory listing",
			accountType: models.AccountTypeRegular,
			status:      models.SubscriptionActive,
			capability:  CapabilityCreateDirectoryListing,
			wantAllowed: false,
			wantReason:  ReasonInsufficientAccountType,
		},
		{
			name:        "admin never gains creation capability from type alone",
			accountType: models.AccountTypeAdmin,
			status:      models.SubscriptionActive,
			capability:  CapabilityCreateProduct,
			wantAllowed: false,
			wantReason:  ReasonInsufficientAccountType,
		},
		{
			name:        "admin cannot create directory listing either",
			accountType: models.AccountTypeAdmin,
			status:      models.SubscriptionActive,
			capability:  CapabilityCreateDirectoryListing,
			wantAllowed: false,
			wantReason:  ReasonInsufficientAccountType,
		},
		{
			name:        "regular with no subscription comments",
			accountType: models.AccountTypeRegular,
			status:      models.SubscriptionNone,
			capability:  CapabilityCreateComment,
			wantAllowed: true,
		},
		{
			name:        "regular with no subscription likes",
			accountType: models.AccountTypeRegular,
			status:      models.SubscriptionNone,
			capability:  CapabilityLikeComment,
			wantAllowed: true,
		},
		{
			name:        "unknown capability fails closed",
			accountType: models.AccountTypeAdmin,
			status:      models.SubscriptionActive,
			capability:  Capability("rewrite_history"),
			wantAllowed: false,
			wantReason:  ReasonInsufficientAccountType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := models.ActorContext{
				ID:                 "actor-1",
				AccountType:        tt.accountType,
				SubscriptionStatus: tt.status,
			}

			got := gate.CanPerform(actor, tt.capability)
			if got.Allowed != tt.wantAllowed {
				t.Fatalf("CanPerform() allowed = %v, want %v", got.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && got.Reason != tt.wantReason {
				t.Errorf("CanPerform() reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestCapabilityForCreate(t *testing.T) {
	tests := []struct {
		resourceType models.ResourceType
		want         Capability
		wantOK       bool
	}{
		{models.ResourceProviderProfile, CapabilityCreateProviderProfile, true},
		{models.ResourceProduct, CapabilityCreateProduct, true},
		{models.ResourceBlogPost, CapabilityCreateBlogPost, true},
		{models.ResourceDirectoryListing, CapabilityCreateDirectoryListing, true},
		{models.ResourceComment, CapabilityCreateComment, true},
		{models.ResourceType("widget"), "", false},
	}

	for _, tt := range tests {
		got, ok := CapabilityForCreate(tt.resourceType)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("CapabilityForCreate(%q) = (%q, %v), want (%q, %v)",
				tt.resourceType, got, ok, tt.want, tt.wantOK)
		}
	}
}
