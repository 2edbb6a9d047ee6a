package policy

import "bazaar/internal/domain/models"

// Action is an instance-level operation checked by the OwnershipGuard.
type Action string

const (
	ActionRead      Action = "read"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionPublish   Action = "publish"
	ActionUnpublish Action = "unpublish"
	ActionLike      Action = "like"
)

// OwnershipGuard authorizes an actor against a specific resource snapshot.
// It unifies the three independent "who can delete a comment" paths (comment
// author, parent owner, admin) into one ordered rule list so the rule is
// testable in isolation from HTTP plumbing.
//
// This is the simplest authorization model. For future extensibility:
// - role bindings per resource
// - sharing grants checked before the ownership rule
type OwnershipGuard struct{}

// NewOwnershipGuard creates an ownership guard.
func NewOwnershipGuard() *OwnershipGuard {
	return &OwnershipGuard{}
}

// Authorize evaluates the ordered rule list; first match wins.
//
//  1. admin -> Allowed for every action (creation is gated earlier, by AccountGate)
//  2. non-comment resource, lifecycle/CRUD action -> Allowed iff actor owns it
//  3. comment delete -> Allowed iff actor is the comment author or the parent owner
//  4. comment like -> Allowed for any authenticated actor
//  5. anything else -> Denied(not_owner)
//
// A missing parent leaves ParentOwnerID empty, so rule 3's secondary path
// fails closed. Anonymous actors (empty id) never match an owner id.
func (g *OwnershipGuard) Authorize(actor models.ActorContext, resource models.ResourceDescriptor, action Action) Decision {
	if actor.IsAdmin() {
		return Allow()
	}

	if actor.IsAnonymous() {
		return Deny(ReasonNotOwner)
	}

	switch {
	case resource.Type != models.ResourceComment && isOwnerAction(action):
		if actor.ID == resource.OwnerID {
			return Allow()
		}
		return Deny(ReasonNotOwner)

	case resource.Type == models.ResourceComment && action == ActionDelete:
		if actor.ID == resource.OwnerID {
			return Allow()
		}
		if resource.ParentOwnerID != "" && actor.ID == resource.ParentOwnerID {
			return Allow()
		}
		return Deny(ReasonNotOwner)

	case resource.Type == models.ResourceComment && action == ActionLike:
		// Identity, not ownership, is the requirement; anonymous was
		// rejected above
		return Allow()
	}

	return Deny(ReasonNotOwner)
}

func isOwnerAction(action Action) bool {
	switch action {
	case ActionRead, ActionUpdate, ActionDelete, ActionPublish, ActionUnpublish:
		return true
	}
	return false
}
