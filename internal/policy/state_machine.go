package policy

import (
	"time"

	"bazaar/internal/domain/models"
)

// Transition describes the state mutation a caller must persist after an
// allowed lifecycle transition. The engine only describes the intended
// mutation; applying it without lost updates is the storage layer's contract.
type Transition struct {
	NewState models.LifecycleState

	// PublishedAt is non-nil only when this transition stamps the
	// first-publish timestamp. Once set, published_at is never cleared or
	// overwritten.
	PublishedAt *time.Time

	// Changed is false for the idempotent republish case: the caller may
	// skip the write entirely.
	Changed bool
}

// ResourceStateMachine validates and executes lifecycle transitions for
// listing-like resources: draft -> published -> suspended, with an explicit
// admin-only suspended -> draft recovery. published -> draft is disallowed;
// publishing is a one-way commitment.
type ResourceStateMachine struct {
	guard *OwnershipGuard
}

// NewResourceStateMachine creates a state machine over the given guard.
func NewResourceStateMachine(guard *OwnershipGuard) *ResourceStateMachine {
	return &ResourceStateMachine{guard: guard}
}

// Transition evaluates the requested lifecycle transition for the actor.
// Invalid transitions are caller errors (400-class) and are always reported,
// never silently ignored - except the documented idempotent republish, which
// succeeds without rewriting published_at.
func (m *ResourceStateMachine) Transition(actor models.ActorContext, resource models.ResourceDescriptor, target models.LifecycleState, now time.Time) (Transition, error) {
	switch {
	case resource.State == models.StateDraft && target == models.StatePublished:
		if d := m.guard.Authorize(actor, resource, ActionPublish); !d.Allowed {
			return Transition{}, d.Err()
		}
		t := Transition{NewState: models.StatePublished, Changed: true}
		if resource.PublishedAt == nil {
			ts := now
			t.PublishedAt = &ts
		}
		return t, nil

	case resource.State == models.StatePublished && target == models.StatePublished:
		// Idempotent republish: authorized like a publish, but the original
		// first-publish timestamp is never overwritten
		if d := m.guard.Authorize(actor, resource, ActionPublish); !d.Allowed {
			return Transition{}, d.Err()
		}
		return Transition{NewState: models.StatePublished}, nil

	case resource.State == models.StatePublished && target == models.StateSuspended,
		resource.State == models.StateSuspended && target == models.StateDraft:
		if !actor.IsAdmin() {
			return Transition{}, Deny(ReasonNotOwner).Err()
		}
		return Transition{NewState: target, Changed: true}, nil
	}

	// Everything else - published -> draft, draft -> suspended, same-state
	// requests, unknown states - is an invalid transition for every actor,
	// admin included
	return Transition{}, Deny(ReasonInvalidTransition).Err()
}
