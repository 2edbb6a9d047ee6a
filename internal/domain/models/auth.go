package models

import "github.com/golang-jwt/jwt/v5"

// MarketplaceClaims represents the JWT claims structure issued by the auth
// collaborator. Account type and subscription status travel in app_metadata,
// but the accounts table is authoritative: services re-resolve the actor from
// storage so a stale token cannot keep a lapsed subscription alive.
type MarketplaceClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	AppMetadata          struct {
		AccountType        string `json:"account_type"`
		SubscriptionStatus string `json:"subscription_status"`
	} `json:"app_metadata"`
	SessionID string `json:"session_id"`
}

// GetUserID returns the user ID from the JWT subject claim.
// This is the primary identifier for the authenticated user.
func (c *MarketplaceClaims) GetUserID() string {
	return c.Subject
}
