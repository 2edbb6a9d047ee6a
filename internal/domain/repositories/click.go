package repositories

import (
	"context"

	"bazaar/internal/domain/models"
)

// ClickRepository persists contact-click dedup state. Record is a single
// conditional insert keyed on (session_id, listing_id) so concurrent calls
// for the same pair record at most once.
type ClickRepository interface {
	// Record inserts the click if no row exists for the (session, listing)
	// pair. Returns false when the pair was already recorded (no write).
	Record(ctx context.Context, click *models.ContactClick) (bool, error)

	// CountByListing returns the number of distinct engaged sessions
	CountByListing(ctx context.Context, listingID string) (int, error)
}
