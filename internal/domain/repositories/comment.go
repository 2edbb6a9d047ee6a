package repositories

import (
	"context"

	"bazaar/internal/domain/models"
)

// CommentRepository persists comments and their like sets. The like set is a
// relation keyed on (comment_id, actor_id); AddLike/RemoveLike are single
// atomic statements so concurrent toggles by the same actor cannot
// double-count and toggles by different actors are all reflected.
type CommentRepository interface {
	// Create inserts a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// GetByID retrieves a comment with its like set and the parent listing's
	// owner id. ParentOwnerID is empty when the parent row is gone.
	// Returns domain.ErrNotFound when no row exists.
	GetByID(ctx context.Context, id string) (*models.Comment, error)

	// ListByListing retrieves all comments under a listing, oldest first
	ListByListing(ctx context.Context, listingID string) ([]models.Comment, error)

	// AddLike inserts the actor into the like set if absent and returns the
	// derived like count. Idempotent: re-adding an existing member is a no-op.
	AddLike(ctx context.Context, commentID, actorID string) (int, error)

	// RemoveLike deletes the actor from the like set if present and returns
	// the derived like count.
	RemoveLike(ctx context.Context, commentID, actorID string) (int, error)

	// Delete removes a comment and its like set
	Delete(ctx context.Context, id string) error
}
