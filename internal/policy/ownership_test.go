package policy

import (
	"testing"

	"bazaar/internal/domain/models"
)

var (
	owner    = models.ActorContext{ID: "u-owner", AccountType: models.AccountTypeProvider, SubscriptionStatus: models.SubscriptionActive}
	stranger = models.ActorContext{ID: "u-stranger", AccountType: models.AccountTypeProvider, SubscriptionStatus: models.SubscriptionActive}
	admin    = models.ActorContext{ID: "u-admin", AccountType: models.AccountTypeAdmin}
	anon     = models.ActorContext{}
)

func TestOwnershipGuardAdminOverride(t *testing.T) {
	guard := NewOwnershipGuard()
	resource := models.ResourceDescriptor{
		Type:    models.ResourceBlogPost,
		ID:      "r-1",
		OwnerID: "u-owner",
		State:   models.StatePublished,
	}

	// Admin is allowed for every instance-level action
	for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete, ActionPublish, ActionUnpublish} {
		if d := guard.Authorize(admin, resource, action); !d.Allowed {
			t.Errorf("Authorize(admin, %q) denied with reason %q, want allowed", action, d.Reason)
		}
	}
}

func TestOwnershipGuardNonComment(t *testing.T) {
	guard := NewOwnershipGuard()
	resource := models.ResourceDescriptor{
		Type:    models.ResourceDirectoryListing,
		ID:      "r-2",
		OwnerID: "u-owner",
		State:   models.StateDraft,
	}

	tests := []struct {
		name        string
		actor       models.ActorContext
		action      Action
		wantAllowed bool
	}{
		{"owner reads own draft", owner, ActionRead, true},
		{"owner updates", owner, ActionUpdate, true},
		{"owner publishes", owner, ActionPublish, true},
		{"owner deletes", owner, ActionDelete, true},
		{"stranger cannot read draft", stranger, ActionRead, false},
		{"stranger cannot update", stranger, ActionUpdate, false},
		{"stranger cannot delete", stranger, ActionDelete, false},
		{"anonymous cannot read draft", anon, ActionRead, false},
		{"owner cannot like a listing", owner, ActionLike, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guard.Authorize(tt.actor, resource, tt.action)
			if got.Allowed != tt.wantAllowed {
				t.Fatalf("Authorize() allowed = %v, want %v", got.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && got.Reason != ReasonNotOwner {
				t.Errorf("Authorize() reason = %q, want %q", got.Reason, ReasonNotOwner)
			}
		})
	}
}

func TestOwnershipGuardCommentDelete(t *testing.T) {
	guard := NewOwnershipGuard()

	comment := models.ResourceDescriptor{
		Type:          models.ResourceComment,
		ID:            "c-1",
		OwnerID:       "u-author",
		ParentOwnerID: "u-blogger",
	}

	author := models.ActorContext{ID: "u-author", AccountType: models.AccountTypeRegular}
	blogger := models.ActorContext{ID: "u-blogger", AccountType: models.AccountTypeProvider}
	unrelated := models.ActorContext{ID: "u-unrelated", AccountType: models.AccountTypeRegular}

	tests := []struct {
		name        string
		actor       models.ActorContext
		resource    models.ResourceDescriptor
		wantAllowed bool
	}{
		{"comment author deletes", author, comment, true},
		{"parent owner deletes", blogger, comment, true},
		{"admin deletes", admin, comment, true},
		{"unrelated actor denied", unrelated, comment, false},
		{"anonymous denied", anon, comment, false},
		{
			// Parent deleted out from under the comment: secondary
			// ownership fails closed rather than crashing
			name:  "missing parent denies former parent owner",
			actor: blogger,
			resource: models.ResourceDescriptor{
				Type:    models.ResourceComment,
				ID:      "c-orphan",
				OwnerID: "u-author",
			},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guard.Authorize(tt.actor, tt.resource, ActionDelete)
			if got.Allowed != tt.wantAllowed {
				t.Fatalf("Authorize(delete) allowed = %v, want %v", got.Allowed, tt.wantAllowed)
			}
		})
	}
}

func TestOwnershipGuardCommentLike(t *testing.T) {
	guard := NewOwnershipGuard()
	comment := models.ResourceDescriptor{
		Type:          models.ResourceComment,
		ID:            "c-1",
		OwnerID:       "u-author",
		ParentOwnerID: "u-blogger",
	}

	// Any authenticated actor may like, ownership irrelevant
	if d := guard.Authorize(stranger, comment, ActionLike); !d.Allowed {
		t.Errorf("Authorize(stranger, like) denied with reason %q, want allowed", d.Reason)
	}

	// Anonymous actors are denied: the capability requires identity
	if d := guard.Authorize(anon, comment, ActionLike); d.Allowed {
		t.Error("Authorize(anonymous, like) allowed, want denied")
	}
}
