package services

import (
	"context"

	"bazaar/internal/domain/models"
)

// AccountService resolves authenticated user ids into actor contexts.
// The accounts table is authoritative for account type and subscription
// status; JWT app metadata is treated as a hint only.
type AccountService interface {
	// GetAccount returns the account snapshot for an id
	GetAccount(ctx context.Context, id string) (*models.Account, error)

	// ResolveActor builds the request-scoped ActorContext. An empty userID
	// yields the anonymous actor; an unknown id is an auth failure.
	ResolveActor(ctx context.Context, userID string) (models.ActorContext, error)
}
