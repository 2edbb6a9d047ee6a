package services

import (
	"context"
	"time"

	"bazaar/internal/domain/models"
)

// CreateListingRequest is the input for creating a listing-like resource.
// OwnerID is filled from the authenticated actor, never from the body.
type CreateListingRequest struct {
	OwnerID string              `json:"-"`
	Type    models.ResourceType `json:"type"`
	Title   string              `json:"title"`
	Body    string              `json:"body"`
}

// UpdateListingRequest is the input for editing a listing. Nil fields are
// left unchanged.
type UpdateListingRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// ListingView is a listing as rendered to callers: IsFeatured is the
// effective value computed through lazy expiry, never the raw stored flag.
type ListingView struct {
	models.Listing
	IsFeatured bool `json:"is_featured"`
}

// ListingService owns listing CRUD and the publication lifecycle. Every
// mutation consults the policy engine before touching storage.
type ListingService interface {
	// CreateListing gates creation on the actor's account type and
	// subscription, then inserts the listing in draft state
	CreateListing(ctx context.Context, actor models.ActorContext, req *CreateListingRequest) (*models.Listing, error)

	// GetListing returns a listing; drafts and suspended listings are
	// visible only to the owner or admin
	GetListing(ctx context.Context, actor models.ActorContext, id string) (*ListingView, error)

	// ListPublished returns published listings of a type, featured first
	ListPublished(ctx context.Context, resourceType models.ResourceType, limit, offset int) ([]ListingView, error)

	// ListMine returns all of the actor's own listings regardless of state
	ListMine(ctx context.Context, actor models.ActorContext) ([]ListingView, error)

	// UpdateListing edits title/body, owner or admin only
	UpdateListing(ctx context.Context, actor models.ActorContext, id string, req *UpdateListingRequest) (*models.Listing, error)

	// DeleteListing removes a listing, owner or admin only
	DeleteListing(ctx context.Context, actor models.ActorContext, id string) error

	// Transition drives the lifecycle state machine (publish, suspend,
	// restore) and persists the resulting mutation
	Transition(ctx context.Context, actor models.ActorContext, id string, target models.LifecycleState) (*models.Listing, error)

	// FeatureListing marks a listing featured until expiresAt, admin only
	FeatureListing(ctx context.Context, actor models.ActorContext, id string, expiresAt time.Time) (*models.Listing, error)
}
