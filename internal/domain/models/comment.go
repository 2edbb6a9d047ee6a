package models

import "time"

// Comment is moderation content attached to a listing-like parent resource.
// LikedBy is the source of truth for likes; the count is always derived from
// set membership, never stored as an independent counter.
type Comment struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	LikedBy   []string  `json:"liked_by"`
	CreatedAt time.Time `json:"created_at"`

	// ParentOwnerID is resolved at load time from the parent listing.
	// Empty when the parent row is missing (deleted out from under the
	// comment); nested-ownership checks then fail closed.
	ParentOwnerID string `json:"-"`
}

// Descriptor returns the policy-engine view of the comment.
func (c *Comment) Descriptor() ResourceDescriptor {
	return ResourceDescriptor{
		Type:          ResourceComment,
		ID:            c.ID,
		OwnerID:       c.AuthorID,
		ParentOwnerID: c.ParentOwnerID,
		CreatedAt:     c.CreatedAt,
	}
}

// LikeCount derives the like count from set membership.
func (c *Comment) LikeCount() int {
	return len(c.LikedBy)
}

// HasLiked reports whether the actor is already in the like set.
func (c *Comment) HasLiked(actorID string) bool {
	for _, id := range c.LikedBy {
		if id == actorID {
			return true
		}
	}
	return false
}
