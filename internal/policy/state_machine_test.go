package policy

import (
	"errors"
	"testing"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
)

func newTestStateMachine() *ResourceStateMachine {
	return NewResourceStateMachine(NewOwnershipGuard())
}

func draftListing() models.ResourceDescriptor {
	return models.ResourceDescriptor{
		Type:    models.ResourceDirectoryListing,
		ID:      "r-1",
		OwnerID: "u-owner",
		State:   models.StateDraft,
	}
}

func TestTransitionFirstPublishStampsTimestamp(t *testing.T) {
	sm := newTestStateMachine()
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	got, err := sm.Transition(owner, draftListing(), models.StatePublished, now)
	if err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	if got.NewState != models.StatePublished {
		t.Errorf("NewState = %q, want %q", got.NewState, models.StatePublished)
	}
	if !got.Changed {
		t.Error("Changed = false, want true")
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(now) {
		t.Errorf("PublishedAt = %v, want %v", got.PublishedAt, now)
	}
}

func TestTransitionPublishDoesNotOverwriteTimestamp(t *testing.T) {
	sm := newTestStateMachine()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// A draft recovered from suspension keeps its original publish timestamp
	resource := draftListing()
	resource.PublishedAt = &first

	got, err := sm.Transition(owner, resource, models.StatePublished, first.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	if got.PublishedAt != nil {
		t.Errorf("PublishedAt = %v, want nil (write-once field already set)", got.PublishedAt)
	}
}

func TestTransitionRepublishIsIdempotent(t *testing.T) {
	sm := newTestStateMachine()
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	resource := draftListing()
	resource.State = models.StatePublished
	resource.PublishedAt = &first

	got, err := sm.Transition(owner, resource, models.StatePublished, first.Add(time.Hour))
	if err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	if got.Changed {
		t.Error("Changed = true for republish, want false")
	}
	if got.PublishedAt != nil {
		t.Errorf("PublishedAt = %v, want nil", got.PublishedAt)
	}
}

func TestTransitionDeniedAndInvalidCases(t *testing.T) {
	sm := newTestStateMachine()
	now := time.Now()

	published := draftListing()
	published.State = models.StatePublished

	suspended := draftListing()
	suspended.State = models.StateSuspended

	tests := []struct {
		name       string
		actor      models.ActorContext
		resource   models.ResourceDescriptor
		target     models.LifecycleState
		wantReason Reason
	}{
		{"non-owner cannot publish", stranger, draftListing(), models.StatePublished, ReasonNotOwner},
		{"anonymous cannot publish", anon, draftListing(), models.StatePublished, ReasonNotOwner},
		{"owner cannot suspend", owner, published, models.StateSuspended, ReasonNotOwner},
		{"owner cannot restore", owner, suspended, models.StateDraft, ReasonNotOwner},
		{"published to draft is invalid even for admin", admin, published, models.StateDraft, ReasonInvalidTransition},
		{"published to draft is invalid for owner", owner, published, models.StateDraft, ReasonInvalidTransition},
		{"draft to suspended is invalid", admin, draftListing(), models.StateSuspended, ReasonInvalidTransition},
		{"same-state draft request is invalid", owner, draftListing(), models.StateDraft, ReasonInvalidTransition},
		{"suspended to published is invalid", admin, suspended, models.StatePublished, ReasonInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sm.Transition(tt.actor, tt.resource, tt.target, now)
			if err == nil {
				t.Fatal("Transition() error = nil, want denial")
			}

			var denied *domain.DeniedError
			if !errors.As(err, &denied) {
				t.Fatalf("Transition() error = %v, want *domain.DeniedError", err)
			}
			if denied.Reason != string(tt.wantReason) {
				t.Errorf("reason = %q, want %q", denied.Reason, tt.wantReason)
			}
		})
	}
}

func TestTransitionAdminLifecycle(t *testing.T) {
	sm := newTestStateMachine()
	now := time.Now()

	published := draftListing()
	published.State = models.StatePublished

	got, err := sm.Transition(admin, published, models.StateSuspended, now)
	if err != nil {
		t.Fatalf("Transition(suspend) error = %v", err)
	}
	if got.NewState != models.StateSuspended || !got.Changed {
		t.Errorf("Transition(suspend) = %+v, want suspended/changed", got)
	}

	suspended := draftListing()
	suspended.State = models.StateSuspended

	got, err = sm.Transition(admin, suspended, models.StateDraft, now)
	if err != nil {
		t.Fatalf("Transition(restore) error = %v", err)
	}
	if got.NewState != models.StateDraft || !got.Changed {
		t.Errorf("Transition(restore) = %+v, want draft/changed", got)
	}
	if got.PublishedAt != nil {
		t.Errorf("restore stamped PublishedAt = %v, want nil", got.PublishedAt)
	}
}
