package policy

import "bazaar/internal/domain/models"

// AccountGate decides whether an actor may perform a capability based on
// account type and subscription status, independent of any specific resource
// instance. Instance-level checks (ownership, lifecycle) come after the gate.
//
// Admin is never granted creation capabilities here: an admin who also holds
// the required account type passes like anyone else, but the admin type by
// itself creates nothing. Admin power is expressed only through
// OwnershipGuard's override.
type AccountGate struct {
	registry *Registry
}

// NewAccountGate creates an account gate backed by the capability table.
func NewAccountGate(registry *Registry) *AccountGate {
	return &AccountGate{registry: registry}
}

// CanPerform evaluates the capability table for the actor. Both predicates
// must hold: account type first, then subscription status, so the denial
// reason names the first unmet requirement.
func (g *AccountGate) CanPerform(actor models.ActorContext, capability Capability) Decision {
	rule, ok := g.registry.Lookup(capability)
	if !ok {
		// Unknown capability: fail closed
		return Deny(ReasonInsufficientAccountType)
	}

	if len(rule.AccountTypes) > 0 && !containsAccountType(rule.AccountTypes, actor.AccountType) {
		return Deny(ReasonInsufficientAccountType)
	}

	if len(rule.SubscriptionStatuses) > 0 && !containsSubscription(rule.SubscriptionStatuses, actor.SubscriptionStatus) {
		return Deny(ReasonSubscriptionRequired)
	}

	return Allow()
}

func containsAccountType(types []models.AccountType, t models.AccountType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func containsSubscription(statuses []models.SubscriptionStatus, s models.SubscriptionStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}
