package models

import "time"

// ResourceType identifies the kind of owned resource being acted on.
type ResourceType string

const (
	ResourceProviderProfile  ResourceType = "provider_profile"
	ResourceProduct          ResourceType = "product"
	ResourceBlogPost         ResourceType = "blog_post"
	ResourceDirectoryListing ResourceType = "directory_listing"
	ResourceComment          ResourceType = "comment"
)

// LifecycleState is the publication state of a listing-like resource.
// Comments have no lifecycle state.
type LifecycleState string

const (
	StateDraft     LifecycleState = "draft"
	StatePublished LifecycleState = "published"
	StateSuspended LifecycleState = "suspended"
)

// ResourceDescriptor is the normalized snapshot of a resource handed to the
// policy engine. Descriptors are built from a freshly loaded row immediately
// before a decision and discarded after; they are never cached across requests.
type ResourceDescriptor struct {
	Type    ResourceType
	ID      string
	OwnerID string

	// ParentOwnerID is set for comments only: the owner of the blog/listing
	// the comment is attached to. Empty when the resource has no parent or
	// the parent row is missing, in which case nested-ownership checks fail
	// closed (deny, not crash).
	ParentOwnerID string

	State             LifecycleState
	IsFeatured        bool
	FeatureExpiration *time.Time
	PublishedAt       *time.Time
	CreatedAt         time.Time
}

// Listing is a persisted listing-like resource (provider profile, product,
// blog post or directory listing). Ownership never changes after creation.
type Listing struct {
	ID                string         `json:"id"`
	OwnerID           string         `json:"owner_id"`
	Type              ResourceType   `json:"type"`
	Title             string         `json:"title"`
	Body              string         `json:"body"`
	State             LifecycleState `json:"state"`
	IsFeatured        bool           `json:"is_featured"`
	FeatureExpiration *time.Time     `json:"feature_expiration,omitempty"`
	PublishedAt       *time.Time     `json:"published_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// Descriptor returns the policy-engine view of the listing.
func (l *Listing) Descriptor() ResourceDescriptor {
	return ResourceDescriptor{
		Type:              l.Type,
		ID:                l.ID,
		OwnerID:           l.OwnerID,
		State:             l.State,
		IsFeatured:        l.IsFeatured,
		FeatureExpiration: l.FeatureExpiration,
		PublishedAt:       l.PublishedAt,
		CreatedAt:         l.CreatedAt,
	}
}
