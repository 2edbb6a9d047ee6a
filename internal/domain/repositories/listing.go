package repositories

import (
	"context"
	"time"

	"bazaar/internal/domain/models"
)

// ListingRepository persists listing-like resources (provider profiles,
// products, blog posts, directory listings). The engine never queries storage
// itself; services load a snapshot, decide, then apply the returned mutation
// through these methods.
type ListingRepository interface {
	// Create inserts a new listing in draft state
	Create(ctx context.Context, listing *models.Listing) error

	// GetByID retrieves a listing regardless of state.
	// Returns domain.ErrNotFound when no row exists.
	GetByID(ctx context.Context, id string) (*models.Listing, error)

	// ListPublished retrieves published listings of a type, featured first
	ListPublished(ctx context.Context, resourceType models.ResourceType, limit, offset int) ([]models.Listing, error)

	// ListByOwner retrieves all listings owned by an account
	ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)

	// Update persists title/body edits
	Update(ctx context.Context, listing *models.Listing) error

	// SetState applies a lifecycle transition. publishedAt, when non-nil, is
	// written with COALESCE so the first-publish timestamp is write-once even
	// under concurrent publishers.
	SetState(ctx context.Context, id string, state models.LifecycleState, publishedAt *time.Time) error

	// SetFeature marks a listing featured until the given expiration
	SetFeature(ctx context.Context, id string, expiration time.Time) error

	// Delete removes a listing
	Delete(ctx context.Context, id string) error
}
