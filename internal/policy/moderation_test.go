package policy

import (
	"testing"

	"bazaar/internal/domain/models"
)

func testComment(likedBy ...string) *models.Comment {
	return &models.Comment{
		ID:            "c-1",
		ListingID:     "r-1",
		AuthorID:      "u-author",
		ParentOwnerID: "u-blogger",
		Body:          "nice listing",
		LikedBy:       likedBy,
	}
}

func TestModerationAuthorizeDelete(t *testing.T) {
	engine := NewModerationEngine(NewOwnershipGuard())
	comment := testComment().Descriptor()

	tests := []struct {
		name        string
		actor       models.ActorContext
		wantAllowed bool
	}{
		{"comment author", models.ActorContext{ID: "u-author", AccountType: models.AccountTypeRegular}, true},
		{"parent owner", models.ActorContext{ID: "u-blogger", AccountType: models.AccountTypeProvider}, true},
		{"admin", admin, true},
		{"unrelated actor", models.ActorContext{ID: "u-3", AccountType: models.AccountTypeRegular}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.AuthorizeDelete(tt.actor, comment)
			if got.Allowed != tt.wantAllowed {
				t.Fatalf("AuthorizeDelete() allowed = %v, want %v", got.Allowed, tt.wantAllowed)
			}
		})
	}
}

func TestModerationToggleLike(t *testing.T) {
	engine := NewModerationEngine(NewOwnershipGuard())
	actor := models.ActorContext{ID: "u-liker", AccountType: models.AccountTypeRegular}

	comment := testComment("u-other")

	// First toggle joins the set
	got, err := engine.ToggleLike(actor, comment)
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if !got.Liked || got.LikeCount != 2 {
		t.Fatalf("ToggleLike() = %+v, want liked with count 2", got)
	}

	// Second toggle, with the mutation applied, is its own inverse
	comment.LikedBy = append(comment.LikedBy, actor.ID)
	got, err = engine.ToggleLike(actor, comment)
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if got.Liked || got.LikeCount != 1 {
		t.Fatalf("second ToggleLike() = %+v, want unliked with count 1", got)
	}
}

func TestModerationToggleLikeAnonymous(t *testing.T) {
	engine := NewModerationEngine(NewOwnershipGuard())

	if _, err := engine.ToggleLike(anon, testComment()); err == nil {
		t.Error("ToggleLike(anonymous) error = nil, want denial")
	}
}
