package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bazaar/internal/config"
	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
	"bazaar/internal/domain/repositories"
	"bazaar/internal/domain/services"
	"bazaar/internal/policy"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// listingService implements the ListingService interface
type listingService struct {
	listingRepo  repositories.ListingRepository
	txManager    repositories.TransactionManager
	gate         *policy.AccountGate
	guard        *policy.OwnershipGuard
	stateMachine *policy.ResourceStateMachine
	logger       *slog.Logger
	now          func() time.Time
}

// NewListingService creates a new listing service
func NewListingService(
	listingRepo repositories.ListingRepository,
	txManager repositories.TransactionManager,
	gate *policy.AccountGate,
	guard *policy.OwnershipGuard,
	stateMachine *policy.ResourceStateMachine,
	logger *slog.Logger,
) services.ListingService {
	return &listingService{
		listingRepo:  listingRepo,
		txManager:    txManager,
		gate:         gate,
		guard:        guard,
		stateMachine: stateMachine,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateListing gates creation on the capability table, then inserts the
// listing in draft state
func (s *listingService) CreateListing(ctx context.Context, actor models.ActorContext, req *services.CreateListingRequest) (*models.Listing, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	capability, ok := policy.CapabilityForCreate(req.Type)
	if !ok || req.Type == models.ResourceComment {
		return nil, fmt.Errorf("%w: unsupported listing type %q", domain.ErrValidation, req.Type)
	}

	if d := s.gate.CanPerform(actor, capability); !d.Allowed {
		s.logger.Info("listing creation denied",
			"actor_id", actor.ID,
			"resource_type", req.Type,
			"reason", d.Reason,
		)
		return nil, d.Err()
	}

	now := s.now()
	listing := &models.Listing{
		ID:        uuid.NewString(),
		OwnerID:   actor.ID,
		Type:      req.Type,
		Title:     strings.TrimSpace(req.Title),
		Body:      req.Body,
		State:     models.StateDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	return listing, nil
}

// GetListing returns a listing; non-published states are visible only to the
// owner or admin
func (s *listingService) GetListing(ctx context.Context, actor models.ActorContext, id string) (*services.ListingView, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	if listing.State != models.StatePublished {
		if d := s.guard.Authorize(actor, listing.Descriptor(), policy.ActionRead); !d.Allowed {
			// Do not leak existence of unpublished listings
			return nil, fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
		}
	}

	return s.view(listing), nil
}

// ListPublished returns published listings of a type, featured first
func (s *listingService) ListPublished(ctx context.Context, resourceType models.ResourceType, limit, offset int) ([]services.ListingView, error) {
	listings, err := s.listingRepo.ListPublished(ctx, resourceType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list published: %w", err)
	}

	views := make([]services.ListingView, 0, len(listings))
	for i := range listings {
		views = append(views, *s.view(&listings[i]))
	}
	return views, nil
}

// ListMine returns the actor's own listings regardless of state
func (s *listingService) ListMine(ctx context.Context, actor models.ActorContext) ([]services.ListingView, error) {
	if actor.IsAnonymous() {
		return nil, fmt.Errorf("list own listings: %w", domain.ErrUnauthorized)
	}

	listings, err := s.listingRepo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list own listings: %w", err)
	}

	views := make([]services.ListingView, 0, len(listings))
	for i := range listings {
		views = append(views, *s.view(&listings[i]))
	}
	return views, nil
}

// UpdateListing edits title/body, owner or admin only
func (s *listingService) UpdateListing(ctx context.Context, actor models.ActorContext, id string, req *services.UpdateListingRequest) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	if d := s.guard.Authorize(actor, listing.Descriptor(), policy.ActionUpdate); !d.Allowed {
		return nil, d.Err()
	}

	if req.Title != nil {
		listing.Title = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		listing.Body = *req.Body
	}

	if err := validation.ValidateStruct(listing,
		validation.Field(&listing.Title, validation.Required, validation.Length(1, config.MaxListingTitleLength)),
		validation.Field(&listing.Body, validation.Length(0, config.MaxListingBodyLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	listing.UpdatedAt = s.now()
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}

	return listing, nil
}

// DeleteListing removes a listing, owner or admin only
func (s *listingService) DeleteListing(ctx context.Context, actor models.ActorContext, id string) error {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get listing: %w", err)
	}

	if d := s.guard.Authorize(actor, listing.Descriptor(), policy.ActionDelete); !d.Allowed {
		return d.Err()
	}

	if err := s.listingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}

	return nil
}

// Transition drives the lifecycle state machine and persists the mutation it
// describes. The read and the state write share a transaction so a concurrent
// transition cannot slip between the check and the apply.
func (s *listingService) Transition(ctx context.Context, actor models.ActorContext, id string, target models.LifecycleState) (*models.Listing, error) {
	var listing *models.Listing
	var transition policy.Transition

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		listing, err = s.listingRepo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get listing: %w", err)
		}

		transition, err = s.stateMachine.Transition(actor, listing.Descriptor(), target, s.now())
		if err != nil {
			return err
		}

		if !transition.Changed {
			// Idempotent republish: nothing to write
			return nil
		}

		if err := s.listingRepo.SetState(txCtx, id, transition.NewState, transition.PublishedAt); err != nil {
			return fmt.Errorf("apply transition: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !transition.Changed {
		return listing, nil
	}

	s.logger.Info("listing transitioned",
		"listing_id", id,
		"actor_id", actor.ID,
		"from", listing.State,
		"to", transition.NewState,
	)

	listing.State = transition.NewState
	if transition.PublishedAt != nil && listing.PublishedAt == nil {
		listing.PublishedAt = transition.PublishedAt
	}
	return listing, nil
}

// FeatureListing marks a listing featured until expiresAt, admin only.
// The expiration must be in the future: a featured flag without a future
// expiration is never written.
func (s *listingService) FeatureListing(ctx context.Context, actor models.ActorContext, id string, expiresAt time.Time) (*models.Listing, error) {
	if !actor.IsAdmin() {
		return nil, policy.Deny(policy.ReasonNotOwner).Err()
	}

	if !expiresAt.After(s.now()) {
		return nil, fmt.Errorf("%w: feature expiration must be in the future", domain.ErrValidation)
	}

	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	if err := s.listingRepo.SetFeature(ctx, id, expiresAt); err != nil {
		return nil, fmt.Errorf("feature listing: %w", err)
	}

	listing.IsFeatured = true
	listing.FeatureExpiration = &expiresAt
	return listing, nil
}

// view renders a listing with the effective feature flag computed through
// lazy expiry
func (s *listingService) view(listing *models.Listing) *services.ListingView {
	return &services.ListingView{
		Listing:    *listing,
		IsFeatured: policy.IsEffectivelyFeatured(listing.Descriptor(), s.now()),
	}
}

// validateCreateRequest validates a create listing request
func (s *listingService) validateCreateRequest(req *services.CreateListingRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Type, validation.Required, validation.In(
			models.ResourceProviderProfile,
			models.ResourceProduct,
			models.ResourceBlogPost,
			models.ResourceDirectoryListing,
		)),
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxListingTitleLength)),
		validation.Field(&req.Body, validation.Length(0, config.MaxListingBodyLength)),
	)
}
