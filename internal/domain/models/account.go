package models

import "time"

// Account is the persisted account row backing an ActorContext.
// Subscription status is written by the billing webhook collaborator and
// read here as an opaque enumerated input.
type Account struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	AccountType        AccountType        `json:"account_type"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	StripeCustomerID   *string            `json:"-"`
	SubscriptionID     *string            `json:"-"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// Actor returns the request-scoped identity view of the account.
func (a *Account) Actor() ActorContext {
	return ActorContext{
		ID:                 a.ID,
		AccountType:        a.AccountType,
		SubscriptionStatus: a.SubscriptionStatus,
	}
}
