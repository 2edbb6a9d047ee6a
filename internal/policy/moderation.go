package policy

import "bazaar/internal/domain/models"

// LikeMutation describes the intended like-set mutation for a toggle. The
// set membership, not a counter, is the source of truth: the storage layer
// applies the membership change atomically and the count is always derived
// as the set's size.
type LikeMutation struct {
	// Liked is the actor's membership after the toggle
	Liked bool

	// LikeCount is the derived count after the toggle, computed from the
	// snapshot. Callers should prefer the count returned by the storage
	// layer's atomic apply, which reflects concurrent toggles by others.
	LikeCount int
}

// ModerationEngine holds the comment-specific rules built on the ownership
// guard: who may delete a comment, and how like toggling is deduplicated per
// actor.
type ModerationEngine struct {
	guard *OwnershipGuard
}

// NewModerationEngine creates a moderation engine over the given guard.
func NewModerationEngine(guard *OwnershipGuard) *ModerationEngine {
	return &ModerationEngine{guard: guard}
}

// AuthorizeDelete decides comment deletion: comment author, parent owner and
// admin are each sufficient on their own.
func (m *ModerationEngine) AuthorizeDelete(actor models.ActorContext, comment models.ResourceDescriptor) Decision {
	return m.guard.Authorize(actor, comment, ActionDelete)
}

// ToggleLike computes the intended toggle from a comment snapshot: members
// leave the set, non-members join it. The at-most-one-vote invariant holds
// because membership, not a counter, is mutated.
func (m *ModerationEngine) ToggleLike(actor models.ActorContext, comment *models.Comment) (LikeMutation, error) {
	if d := m.guard.Authorize(actor, comment.Descriptor(), ActionLike); !d.Allowed {
		return LikeMutation{}, d.Err()
	}

	if comment.HasLiked(actor.ID) {
		return LikeMutation{Liked: false, LikeCount: comment.LikeCount() - 1}, nil
	}
	return LikeMutation{Liked: true, LikeCount: comment.LikeCount() + 1}, nil
}
