package postgres

import (
	"context"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
	"bazaar/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCommentRepository implements the CommentRepository interface.
// Likes live in a comment_likes relation with a composite primary key on
// (comment_id, actor_id); the count is always derived from the relation.
type PostgresCommentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(config *RepositoryConfig) repositories.CommentRepository {
	return &PostgresCommentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, listing_id, author_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Comments)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		comment.ID,
		comment.ListingID,
		comment.AuthorID,
		comment.Body,
		comment.CreatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("comment %s: %w", comment.ID, domain.ErrConflict)
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("comment parent %s: %w", comment.ListingID, domain.ErrNotFound)
		}
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment with its like set and the parent listing's
// owner. The LEFT JOIN leaves parent_owner_id NULL when the parent row is
// gone, which the policy engine treats as a failed nested-ownership check.
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.listing_id, c.author_id, c.body, c.created_at,
		       COALESCE(l.owner_id, ''),
		       COALESCE(array_agg(cl.actor_id) FILTER (WHERE cl.actor_id IS NOT NULL), '{}')
		FROM %s c
		LEFT JOIN %s l ON l.id = c.listing_id
		LEFT JOIN %s cl ON cl.comment_id = c.id
		WHERE c.id = $1
		GROUP BY c.id, c.listing_id, c.author_id, c.body, c.created_at, l.owner_id
	`, r.tables.Comments, r.tables.Listings, r.tables.CommentLikes)

	var comment models.Comment
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.ListingID,
		&comment.AuthorID,
		&comment.Body,
		&comment.CreatedAt,
		&comment.ParentOwnerID,
		&comment.LikedBy,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	return &comment, nil
}

// ListByListing retrieves all comments under a listing, oldest first
func (r *PostgresCommentRepository) ListByListing(ctx context.Context, listingID string) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.listing_id, c.author_id, c.body, c.created_at,
		       COALESCE(array_agg(cl.actor_id) FILTER (WHERE cl.actor_id IS NOT NULL), '{}')
		FROM %s c
		LEFT JOIN %s cl ON cl.comment_id = c.id
		WHERE c.listing_id = $1
		GROUP BY c.id, c.listing_id, c.author_id, c.body, c.created_at
		ORDER BY c.created_at ASC
	`, r.tables.Comments, r.tables.CommentLikes)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.ListingID,
			&comment.AuthorID,
			&comment.Body,
			&comment.CreatedAt,
			&comment.LikedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// AddLike inserts the actor into the like set. ON CONFLICT DO NOTHING makes
// the insert idempotent, so a racing double-toggle by the same actor cannot
// double-count; the returned count is re-derived from the relation.
func (r *PostgresCommentRepository) AddLike(ctx context.Context, commentID, actorID string) (int, error) {
	insert := fmt.Sprintf(`
		INSERT INTO %s (comment_id, actor_id)
		VALUES ($1, $2)
		ON CONFLICT (comment_id, actor_id) DO NOTHING
	`, r.tables.CommentLikes)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, insert, commentID, actorID); err != nil {
		if IsPgForeignKeyError(err) {
			return 0, fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("add like: %w", err)
	}

	return r.likeCount(ctx, commentID)
}

// RemoveLike deletes the actor from the like set
func (r *PostgresCommentRepository) RemoveLike(ctx context.Context, commentID, actorID string) (int, error) {
	remove := fmt.Sprintf(`
		DELETE FROM %s WHERE comment_id = $1 AND actor_id = $2
	`, r.tables.CommentLikes)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, remove, commentID, actorID); err != nil {
		return 0, fmt.Errorf("remove like: %w", err)
	}

	return r.likeCount(ctx, commentID)
}

// Delete removes a comment; the like set goes with it via ON DELETE CASCADE
func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Comments)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// likeCount derives the count from set membership
func (r *PostgresCommentRepository) likeCount(ctx context.Context, commentID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE comment_id = $1`, r.tables.CommentLikes)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, commentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}
