package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
	"bazaar/internal/domain/repositories"
	"bazaar/internal/domain/services"
	"bazaar/internal/policy"
)

// clickService implements the ClickService interface
type clickService struct {
	clickRepo   repositories.ClickRepository
	listingRepo repositories.ListingRepository
	guard       *policy.OwnershipGuard
	logger      *slog.Logger
	now         func() time.Time
}

// NewClickService creates a new click service
func NewClickService(
	clickRepo repositories.ClickRepository,
	listingRepo repositories.ListingRepository,
	guard *policy.OwnershipGuard,
	logger *slog.Logger,
) services.ClickService {
	return &clickService{
		clickRepo:   clickRepo,
		listingRepo: listingRepo,
		guard:       guard,
		logger:      logger,
		now:         time.Now,
	}
}

// RecordClick records at most one click per (session, listing) pair. The
// dedup decision is a single conditional insert at the storage layer, so
// concurrent calls for the same pair cannot both record.
func (s *clickService) RecordClick(ctx context.Context, sessionID, listingID string, clickType models.ClickType) (policy.ClickOutcome, error) {
	if sessionID == "" {
		return "", fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}
	if !clickType.Valid() {
		return "", fmt.Errorf("%w: unknown click type %q", domain.ErrValidation, clickType)
	}

	// Clicks only count against listings that are actually visible
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return "", fmt.Errorf("get listing: %w", err)
	}
	if listing.State != models.StatePublished {
		return "", fmt.Errorf("listing %s: %w", listingID, domain.ErrNotFound)
	}

	recorded, err := s.clickRepo.Record(ctx, &models.ContactClick{
		SessionID: sessionID,
		ListingID: listingID,
		ClickType: clickType,
		CreatedAt: s.now(),
	})
	if err != nil {
		return "", fmt.Errorf("record click: %w", err)
	}

	if !recorded {
		return policy.ClickDeduplicated, nil
	}
	return policy.ClickRecorded, nil
}

// CountClicks returns the number of distinct engaged sessions for a listing.
// Engagement stats are private to the listing owner (and admins), so the
// check runs as an update-class action rather than a read.
func (s *clickService) CountClicks(ctx context.Context, actor models.ActorContext, listingID string) (int, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return 0, fmt.Errorf("get listing: %w", err)
	}

	if d := s.guard.Authorize(actor, listing.Descriptor(), policy.ActionUpdate); !d.Allowed {
		return 0, d.Err()
	}

	count, err := s.clickRepo.CountByListing(ctx, listingID)
	if err != nil {
		return 0, fmt.Errorf("count clicks: %w", err)
	}
	return count, nil
}
