package models

// AccountType classifies an account for capability checks.
type AccountType string

const (
	AccountTypeRegular       AccountType = "regular"
	AccountTypeProvider      AccountType = "provider"
	AccountTypeProductSeller AccountType = "product_seller"
	AccountTypeAdmin         AccountType = "admin"
)

// SubscriptionStatus is the normalized billing state of an account.
// It is an opaque enumerated input here; the billing collaborator computes it.
type SubscriptionStatus string

const (
	SubscriptionNone     SubscriptionStatus = "none"
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// ActorContext is the normalized view of the acting identity, supplied by the
// auth collaborator. Immutable per request; never persisted by the engine.
type ActorContext struct {
	ID                 string             `json:"id"`
	AccountType        AccountType        `json:"account_type"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
}

// IsAdmin reports whether the actor holds the admin account type.
func (a ActorContext) IsAdmin() bool {
	return a.AccountType == AccountTypeAdmin
}

// IsAnonymous reports whether the actor carries no identity.
// Anonymous actors can read published content but hold no capabilities
// that require identity (like, comment).
func (a ActorContext) IsAnonymous() bool {
	return a.ID == ""
}
