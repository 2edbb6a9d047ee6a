package postgres

import (
	"context"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
	"bazaar/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAccountRepository implements the AccountRepository interface
type PostgresAccountRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(config *RepositoryConfig) repositories.AccountRepository {
	return &PostgresAccountRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const accountColumns = `id, email, account_type, subscription_status, stripe_customer_id, subscription_id, created_at, updated_at`

// GetByID retrieves an account by its id
func (r *PostgresAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, accountColumns, r.tables.Accounts)
	return r.getOne(ctx, query, id)
}

// GetByStripeCustomerID retrieves the account linked to a Stripe customer
func (r *PostgresAccountRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE stripe_customer_id = $1`, accountColumns, r.tables.Accounts)
	return r.getOne(ctx, query, customerID)
}

// UpdateSubscription writes the normalized subscription status
func (r *PostgresAccountRepository) UpdateSubscription(ctx context.Context, id string, status models.SubscriptionStatus, subscriptionID *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET subscription_status = $2, subscription_id = $3, updated_at = now()
		WHERE id = $1
	`, r.tables.Accounts)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id, status, subscriptionID)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresAccountRepository) getOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	var account models.Account
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.AccountType,
		&account.SubscriptionStatus,
		&account.StripeCustomerID,
		&account.SubscriptionID,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("account: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &account, nil
}

// Ensure interface compliance
var _ repositories.AccountRepository = (*PostgresAccountRepository)(nil)
