package postgres

import (
	"context"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
	"bazaar/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresClickRepository implements the ClickRepository interface
type PostgresClickRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewClickRepository creates a new click repository
func NewClickRepository(config *RepositoryConfig) repositories.ClickRepository {
	return &PostgresClickRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Record inserts the click unless the (session, listing) pair already has a
// row. The primary key on (session_id, listing_id) plus ON CONFLICT DO
// NOTHING makes this a single atomic compare-and-set: concurrent calls for
// the same pair record at most once, and the first click type wins.
func (r *PostgresClickRepository) Record(ctx context.Context, click *models.ContactClick) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (session_id, listing_id, click_type, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, listing_id) DO NOTHING
	`, r.tables.ContactClicks)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		click.SessionID,
		click.ListingID,
		click.ClickType,
		click.CreatedAt,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return false, fmt.Errorf("listing %s: %w", click.ListingID, domain.ErrNotFound)
		}
		return false, fmt.Errorf("record click: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// CountByListing returns the number of distinct engaged sessions
func (r *PostgresClickRepository) CountByListing(ctx context.Context, listingID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE listing_id = $1`, r.tables.ContactClicks)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, listingID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count clicks: %w", err)
	}
	return count, nil
}
