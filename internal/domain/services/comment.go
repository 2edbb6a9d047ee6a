package services

import (
	"context"

	"bazaar/internal/domain/models"
)

// CreateCommentRequest is the input for commenting on a listing.
type CreateCommentRequest struct {
	ListingID string `json:"listing_id"`
	Body      string `json:"body"`
}

// LikeResult is the outcome of a like toggle. LikeCount is derived from set
// membership by the storage layer, so it reflects concurrent toggles by
// other actors.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// CommentService owns moderation content: threaded comments and their likes.
type CommentService interface {
	// CreateComment creates a comment under an existing draft-or-published
	// parent listing. The body is sanitized before persisting.
	CreateComment(ctx context.Context, actor models.ActorContext, req *CreateCommentRequest) (*models.Comment, error)

	// ListComments returns all comments under a listing, oldest first
	ListComments(ctx context.Context, listingID string) ([]models.Comment, error)

	// DeleteComment deletes a comment; comment author, parent owner and
	// admin are each sufficient
	DeleteComment(ctx context.Context, actor models.ActorContext, id string) error

	// ToggleLike flips the actor's membership in the comment's like set
	ToggleLike(ctx context.Context, actor models.ActorContext, commentID string) (*LikeResult, error)
}
