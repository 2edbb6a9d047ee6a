package service

import (
	"context"
	"errors"
	"testing"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
)

func TestResolveActor(t *testing.T) {
	repo := newMemAccountRepo(&models.Account{
		ID:                 "u-1",
		Email:              "pat@example.com",
		AccountType:        models.AccountTypeProvider,
		SubscriptionStatus: models.SubscriptionActive,
	})
	svc := NewAccountService(repo, testLogger())
	ctx := context.Background()

	t.Run("empty id resolves to anonymous", func(t *testing.T) {
		actor, err := svc.ResolveActor(ctx, "")
		if err != nil {
			t.Fatalf("ResolveActor(\"\") error = %v", err)
		}
		if !actor.IsAnonymous() {
			t.Errorf("ResolveActor(\"\") = %+v, want anonymous", actor)
		}
	})

	t.Run("known id resolves from storage", func(t *testing.T) {
		actor, err := svc.ResolveActor(ctx, "u-1")
		if err != nil {
			t.Fatalf("ResolveActor(u-1) error = %v", err)
		}
		if actor.AccountType != models.AccountTypeProvider || actor.SubscriptionStatus != models.SubscriptionActive {
			t.Errorf("ResolveActor(u-1) = %+v, want provider/active", actor)
		}
	})

	t.Run("missing account row is an auth failure", func(t *testing.T) {
		if _, err := svc.ResolveActor(ctx, "u-gone"); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("ResolveActor(u-gone) error = %v, want unauthorized", err)
		}
	})

	t.Run("storage is authoritative over token hints", func(t *testing.T) {
		// A lapsed subscription written by the billing webhook takes
		// effect on the next request even if the token still says active.
		if err := repo.UpdateSubscription(ctx, "u-1", models.SubscriptionPastDue, nil); err != nil {
			t.Fatalf("UpdateSubscription error = %v", err)
		}
		actor, err := svc.ResolveActor(ctx, "u-1")
		if err != nil {
			t.Fatalf("ResolveActor(u-1) error = %v", err)
		}
		if actor.SubscriptionStatus != models.SubscriptionPastDue {
			t.Errorf("SubscriptionStatus = %q, want past_due", actor.SubscriptionStatus)
		}
	})
}
