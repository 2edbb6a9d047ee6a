package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
	"bazaar/internal/domain/repositories"
	"bazaar/internal/domain/services"
)

// accountService implements the AccountService interface
type accountService struct {
	accountRepo repositories.AccountRepository
	logger      *slog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo repositories.AccountRepository, logger *slog.Logger) services.AccountService {
	return &accountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// GetAccount returns the account snapshot for an id
func (s *accountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// ResolveActor builds the request-scoped ActorContext from storage.
// An empty userID yields the anonymous actor. A verified token whose account
// row is gone is an auth failure, not a 404: the identity no longer exists.
func (s *accountService) ResolveActor(ctx context.Context, userID string) (models.ActorContext, error) {
	if userID == "" {
		return models.ActorContext{}, nil
	}

	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("token subject has no account row", "user_id", userID)
			return models.ActorContext{}, fmt.Errorf("resolve actor %s: %w", userID, domain.ErrUnauthorized)
		}
		return models.ActorContext{}, fmt.Errorf("resolve actor: %w", err)
	}

	return account.Actor(), nil
}
