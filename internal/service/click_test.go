package service

import (
	"context"
	"errors"
	"testing"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
	"bazaar/internal/domain/services"
	"bazaar/internal/policy"
)

func newTestClickService(t *testing.T) (services.ClickService, *memListingRepo) {
	t.Helper()
	listingRepo := newMemListingRepo()
	svc := NewClickService(newMemClickRepo(), listingRepo, policy.NewOwnershipGuard(), testLogger())
	return svc, listingRepo
}

func seedPublishedListing(t *testing.T, repo *memListingRepo, id string) {
	t.Helper()
	err := repo.Create(context.Background(), &models.Listing{
		ID:      id,
		OwnerID: "u-owner",
		Type:    models.ResourceDirectoryListing,
		Title:   "Plumbing by Pat",
		State:   models.StatePublished,
	})
	if err != nil {
		t.Fatalf("seed listing: %v", err)
	}
}

func TestRecordClickDedupAcrossClickTypes(t *testing.T) {
	svc, listingRepo := newTestClickService(t)
	ctx := context.Background()
	seedPublishedListing(t, listingRepo, "l-1")

	// Two email clicks then a phone click from the same session: exactly
	// one Recorded, two Deduplicated
	outcomes := []policy.ClickOutcome{}
	for _, clickType := range []models.ClickType{models.ClickEmail, models.ClickEmail, models.ClickPhone} {
		outcome, err := svc.RecordClick(ctx, "sess-1", "l-1", clickType)
		if err != nil {
			t.Fatalf("RecordClick(%s) error = %v", clickType, err)
		}
		outcomes = append(outcomes, outcome)
	}

	want := []policy.ClickOutcome{policy.ClickRecorded, policy.ClickDeduplicated, policy.ClickDeduplicated}
	for i := range want {
		if outcomes[i] != want[i] {
			t.Errorf("outcome[%d] = %q, want %q", i, outcomes[i], want[i])
		}
	}
}

func TestRecordClickSeparateSessionsAndListings(t *testing.T) {
	svc, listingRepo := newTestClickService(t)
	ctx := context.Background()
	seedPublishedListing(t, listingRepo, "l-1")
	seedPublishedListing(t, listingRepo, "l-2")

	cases := []struct {
		session string
		listing string
		want    policy.ClickOutcome
	}{
		{"sess-1", "l-1", policy.ClickRecorded},
		{"sess-2", "l-1", policy.ClickRecorded},
		{"sess-1", "l-2", policy.ClickRecorded},
		{"sess-1", "l-1", policy.ClickDeduplicated},
	}

	for _, c := range cases {
		outcome, err := svc.RecordClick(ctx, c.session, c.listing, models.ClickWebsite)
		if err != nil {
			t.Fatalf("RecordClick(%s, %s) error = %v", c.session, c.listing, err)
		}
		if outcome != c.want {
			t.Errorf("RecordClick(%s, %s) = %q, want %q", c.session, c.listing, outcome, c.want)
		}
	}
}

func TestRecordClickValidation(t *testing.T) {
	svc, listingRepo := newTestClickService(t)
	ctx := context.Background()
	seedPublishedListing(t, listingRepo, "l-1")

	if _, err := svc.RecordClick(ctx, "", "l-1", models.ClickEmail); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("RecordClick(no session) error = %v, want validation error", err)
	}
	if _, err := svc.RecordClick(ctx, "sess-1", "l-1", models.ClickType("fax")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("RecordClick(unknown type) error = %v, want validation error", err)
	}
	if _, err := svc.RecordClick(ctx, "sess-1", "l-missing", models.ClickEmail); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("RecordClick(missing listing) error = %v, want not found", err)
	}
}

func TestCountClicksOwnerOnly(t *testing.T) {
	svc, listingRepo := newTestClickService(t)
	ctx := context.Background()
	seedPublishedListing(t, listingRepo, "l-1")

	for _, session := range []string{"sess-1", "sess-2", "sess-3"} {
		if _, err := svc.RecordClick(ctx, session, "l-1", models.ClickEmail); err != nil {
			t.Fatalf("RecordClick(%s) error = %v", session, err)
		}
	}

	owner := models.ActorContext{ID: "u-owner", AccountType: models.AccountTypeProvider}
	count, err := svc.CountClicks(ctx, owner, "l-1")
	if err != nil {
		t.Fatalf("CountClicks(owner) error = %v", err)
	}
	if count != 3 {
		t.Errorf("CountClicks(owner) = %d, want 3", count)
	}

	admin := models.ActorContext{ID: "u-admin", AccountType: models.AccountTypeAdmin}
	if _, err := svc.CountClicks(ctx, admin, "l-1"); err != nil {
		t.Errorf("CountClicks(admin) error = %v", err)
	}

	stranger := models.ActorContext{ID: "u-other", AccountType: models.AccountTypeRegular}
	if _, err := svc.CountClicks(ctx, stranger, "l-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("CountClicks(stranger) error = %v, want forbidden", err)
	}
}
