// Package policy is the access-controlled content lifecycle engine: every
// resource-mutating operation consults it before touching storage. It is a
// pure decision layer - given the same inputs it always returns the same
// decision. No I/O, no clocks read internally, no package-level mutable state.
package policy

import "bazaar/internal/domain"

// Reason is a machine-readable code attached to every denial so callers can
// render a specific message instead of a generic refusal.
type Reason string

const (
	ReasonInsufficientAccountType Reason = "insufficient_account_type"
	ReasonSubscriptionRequired    Reason = "subscription_required"
	ReasonNotOwner                Reason = "not_owner"
	ReasonInvalidTransition       Reason = "invalid_transition"
)

// Decision is a tagged variant: Allowed, or Denied with a reason.
// Denials are expected, user-facing outcomes, never exceptions.
type Decision struct {
	Allowed bool
	Reason  Reason // empty when allowed
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with the given reason.
func Deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Err converts the decision to a domain error, or nil when allowed.
// Services use this to surface denials through the usual error path.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &domain.DeniedError{Reason: string(d.Reason)}
}
