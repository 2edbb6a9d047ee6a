package postgres

import (
	"context"
	"fmt"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
	"bazaar/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresListingRepository implements the ListingRepository interface
type PostgresListingRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewListingRepository creates a new listing repository
func NewListingRepository(config *RepositoryConfig) repositories.ListingRepository {
	return &PostgresListingRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const listingColumns = `id, owner_id, type, title, body, state, is_featured, feature_expiration, published_at, created_at, updated_at`

// Create inserts a new listing in draft state
func (r *PostgresListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, type, title, body, state, is_featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Listings)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		listing.ID,
		listing.OwnerID,
		listing.Type,
		listing.Title,
		listing.Body,
		listing.State,
		listing.IsFeatured,
		listing.CreatedAt,
		listing.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("listing %s: %w", listing.ID, domain.ErrConflict)
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("listing owner %s: %w", listing.OwnerID, domain.ErrNotFound)
		}
		return fmt.Errorf("create listing: %w", err)
	}

	return nil
}

// GetByID retrieves a listing regardless of state
func (r *PostgresListingRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, listingColumns, r.tables.Listings)

	var listing models.Listing
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.Type,
		&listing.Title,
		&listing.Body,
		&listing.State,
		&listing.IsFeatured,
		&listing.FeatureExpiration,
		&listing.PublishedAt,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}

	return &listing, nil
}

// ListPublished retrieves published listings of a type, effectively featured
// rows first, then newest publications. Expiry is evaluated in the query the
// same lazy way the engine does: the stored flag alone surfaces nothing.
func (r *PostgresListingRepository) ListPublished(ctx context.Context, resourceType models.ResourceType, limit, offset int) ([]models.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE type = $1 AND state = 'published'
		ORDER BY (is_featured AND feature_expiration > now()) DESC, published_at DESC
		LIMIT $2 OFFSET $3
	`, listingColumns, r.tables.Listings)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, resourceType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list published listings: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// ListByOwner retrieves all listings owned by an account, newest first
func (r *PostgresListingRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, listingColumns, r.tables.Listings)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list listings by owner: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// Update persists title/body edits
func (r *PostgresListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	query := fmt.Sprintf(`
		UPDATE %s SET title = $2, body = $3, updated_at = $4 WHERE id = $1
	`, r.tables.Listings)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, listing.ID, listing.Title, listing.Body, listing.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listing %s: %w", listing.ID, domain.ErrNotFound)
	}

	return nil
}

// SetState applies a lifecycle transition. COALESCE keeps published_at
// write-once even when two publishers race: the first stamp wins and is
// never overwritten.
func (r *PostgresListingRepository) SetState(ctx context.Context, id string, state models.LifecycleState, publishedAt *time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET state = $2,
		    published_at = COALESCE(published_at, $3),
		    updated_at = now()
		WHERE id = $1
	`, r.tables.Listings)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, state, publishedAt)
	if err != nil {
		return fmt.Errorf("set listing state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// SetFeature marks a listing featured until the given expiration
func (r *PostgresListingRepository) SetFeature(ctx context.Context, id string, expiration time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_featured = true, feature_expiration = $2, updated_at = now()
		WHERE id = $1
	`, r.tables.Listings)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, expiration)
	if err != nil {
		return fmt.Errorf("set listing feature: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a listing
func (r *PostgresListingRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Listings)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// scanListings collects listing rows
func scanListings(rows pgx.Rows) ([]models.Listing, error) {
	var listings []models.Listing
	for rows.Next() {
		var listing models.Listing
		err := rows.Scan(
			&listing.ID,
			&listing.OwnerID,
			&listing.Type,
			&listing.Title,
			&listing.Body,
			&listing.State,
			&listing.IsFeatured,
			&listing.FeatureExpiration,
			&listing.PublishedAt,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}
