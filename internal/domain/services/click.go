package services

import (
	"context"

	"bazaar/internal/domain/models"
	"bazaar/internal/policy"
)

// ClickService records contact-info engagement, deduplicated per session.
type ClickService interface {
	// RecordClick records at most one click per (session, listing) pair.
	// Subsequent calls for the same pair return ClickDeduplicated and
	// perform no write, regardless of click type.
	RecordClick(ctx context.Context, sessionID, listingID string, clickType models.ClickType) (policy.ClickOutcome, error)

	// CountClicks returns the number of unique sessions that clicked a
	// listing's contact info. Owner or admin only.
	CountClicks(ctx context.Context, actor models.ActorContext, listingID string) (int, error)
}
