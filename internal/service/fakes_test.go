package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
	"bazaar/internal/domain/repositories"
)

// In-memory repository fakes for service tests. They honor the same atomicity
// contracts as the postgres implementations: like membership and click dedup
// are single guarded mutations.

type memListingRepo struct {
	mu       sync.RWMutex
	listings map[string]*models.Listing
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{listings: make(map[string]*models.Listing)}
}

func (r *memListingRepo) Create(_ context.Context, listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *listing
	r.listings[listing.ID] = &cp
	return nil
}

func (r *memListingRepo) GetByID(_ context.Context, id string) (*models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	listing, ok := r.listings[id]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	cp := *listing
	return &cp, nil
}

func (r *memListingRepo) ListPublished(_ context.Context, resourceType models.ResourceType, limit, offset int) ([]models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Listing
	for _, l := range r.listings {
		if l.Type == resourceType && l.State == models.StatePublished {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *memListingRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Listing
	for _, l := range r.listings {
		if l.OwnerID == ownerID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *memListingRepo) Update(_ context.Context, listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[listing.ID]; !ok {
		return fmt.Errorf("listing %s: %w", listing.ID, domain.ErrNotFound)
	}
	cp := *listing
	r.listings[listing.ID] = &cp
	return nil
}

func (r *memListingRepo) SetState(_ context.Context, id string, state models.LifecycleState, publishedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok {
		return fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	listing.State = state
	// COALESCE semantics: first-publish timestamp is write-once
	if publishedAt != nil && listing.PublishedAt == nil {
		ts := *publishedAt
		listing.PublishedAt = &ts
	}
	return nil
}

func (r *memListingRepo) SetFeature(_ context.Context, id string, expiration time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.listings[id]
	if !ok {
		return fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	listing.IsFeatured = true
	listing.FeatureExpiration = &expiration
	return nil
}

func (r *memListingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[id]; !ok {
		return fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	delete(r.listings, id)
	return nil
}

// memTxManager runs the function without a real transaction; the fakes
// mutate under their own locks.
type memTxManager struct{}

func (memTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type memCommentRepo struct {
	mu       sync.RWMutex
	comments map[string]*models.Comment
	likes    map[string]map[string]struct{} // commentID -> set of actorIDs
	listings *memListingRepo
}

func newMemCommentRepo(listings *memListingRepo) *memCommentRepo {
	return &memCommentRepo{
		comments: make(map[string]*models.Comment),
		likes:    make(map[string]map[string]struct{}),
		listings: listings,
	}
}

func (r *memCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *comment
	r.comments[comment.ID] = &cp
	r.likes[comment.ID] = make(map[string]struct{})
	return nil
}

func (r *memCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	r.mu.RLock()
	comment, ok := r.comments[id]
	if !ok {
		r.mu.RUnlock()
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	cp := *comment
	cp.LikedBy = nil
	for actorID := range r.likes[id] {
		cp.LikedBy = append(cp.LikedBy, actorID)
	}
	r.mu.RUnlock()

	// Resolve parent owner like the SQL join does: empty when the parent
	// row is gone
	cp.ParentOwnerID = ""
	if parent, err := r.listings.GetByID(ctx, cp.ListingID); err == nil {
		cp.ParentOwnerID = parent.OwnerID
	}
	return &cp, nil
}

func (r *memCommentRepo) ListByListing(_ context.Context, listingID string) ([]models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Comment
	for _, c := range r.comments {
		if c.ListingID == listingID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCommentRepo) AddLike(_ context.Context, commentID, actorID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.likes[commentID]
	if !ok {
		return 0, fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}
	set[actorID] = struct{}{}
	return len(set), nil
}

func (r *memCommentRepo) RemoveLike(_ context.Context, commentID, actorID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.likes[commentID]
	if !ok {
		return 0, fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}
	delete(set, actorID)
	return len(set), nil
}

func (r *memCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	delete(r.comments, id)
	delete(r.likes, id)
	return nil
}

type memClickRepo struct {
	mu     sync.Mutex
	clicks map[string]models.ContactClick // "session|listing" -> first click
}

func newMemClickRepo() *memClickRepo {
	return &memClickRepo{clicks: make(map[string]models.ContactClick)}
}

func (r *memClickRepo) Record(_ context.Context, click *models.ContactClick) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := click.SessionID + "|" + click.ListingID
	if _, exists := r.clicks[key]; exists {
		return false, nil
	}
	r.clicks[key] = *click
	return true, nil
}

func (r *memClickRepo) CountByListing(_ context.Context, listingID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.clicks {
		if c.ListingID == listingID {
			count++
		}
	}
	return count, nil
}

type memAccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

func newMemAccountRepo(accounts ...*models.Account) *memAccountRepo {
	r := &memAccountRepo{accounts: make(map[string]*models.Account)}
	for _, a := range accounts {
		cp := *a
		r.accounts[a.ID] = &cp
	}
	return r
}

func (r *memAccountRepo) GetByID(_ context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	cp := *account
	return &cp, nil
}

func (r *memAccountRepo) GetByStripeCustomerID(_ context.Context, customerID string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.accounts {
		if account.StripeCustomerID != nil && *account.StripeCustomerID == customerID {
			cp := *account
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("stripe customer %s: %w", customerID, domain.ErrNotFound)
}

func (r *memAccountRepo) UpdateSubscription(_ context.Context, id string, status models.SubscriptionStatus, subscriptionID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	account.SubscriptionStatus = status
	account.SubscriptionID = subscriptionID
	return nil
}
