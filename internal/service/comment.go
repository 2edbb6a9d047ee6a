package service

import (
	"context"
	"errors"
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
	"github.com/microcosm-cc/bluemonday"
)

// commentService implements the CommentService interface
type commentService struct {
	commentRepo repositories.CommentRepository
	listingRepo repositories.ListingRepository
	gate        *policy.AccountGate
	moderation  *policy.ModerationEngine
	sanitizer   *bluemonday.Policy
	logger      *slog.Logger
	now         func() time.Time
}

// NewCommentService creates a new comment service
func NewCommentService(
	commentRepo repositories.CommentRepository,
	listingRepo repositories.ListingRepository,
	gate *policy.AccountGate,
	moderation *policy.ModerationEngine,
	logger *slog.Logger,
) services.CommentService {
	return &commentService{
		commentRepo: commentRepo,
		listingRepo: listingRepo,
		gate:        gate,
		moderation:  moderation,
		sanitizer:   bluemonday.UGCPolicy(),
		logger:      logger,
		now:         time.Now,
	}
}

// CreateComment creates a comment under an existing draft-or-published parent
func (s *commentService) CreateComment(ctx context.Context, actor models.ActorContext, req *services.CreateCommentRequest) (*models.Comment, error) {
	if actor.IsAnonymous() {
		return nil, fmt.Errorf("create comment: %w", domain.ErrUnauthorized)
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.ListingID, validation.Required, validation.By(validUUID)),
		validation.Field(&req.Body, validation.Required, validation.Length(1, config.MaxCommentBodyLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if d := s.gate.CanPerform(actor, policy.CapabilityCreateComment); !d.Allowed {
		return nil, d.Err()
	}

	parent, err := s.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		return nil, fmt.Errorf("get parent listing: %w", err)
	}
	if parent.State == models.StateSuspended {
		return nil, fmt.Errorf("%w: listing is not open for comments", domain.ErrValidation)
	}

	body := strings.TrimSpace(s.sanitizer.Sanitize(req.Body))
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is empty after sanitization", domain.ErrValidation)
	}

	comment := &models.Comment{
		ID:            uuid.NewString(),
		ListingID:     parent.ID,
		AuthorID:      actor.ID,
		Body:          body,
		LikedBy:       []string{},
		CreatedAt:     s.now(),
		ParentOwnerID: parent.OwnerID,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return comment, nil
}

// ListComments returns all comments under a listing, oldest first
func (s *commentService) ListComments(ctx context.Context, listingID string) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment deletes a comment after the moderation engine authorizes it.
// A missing parent listing only disables the parent-owner path; the comment
// author and admin can still delete.
func (s *commentService) DeleteComment(ctx context.Context, actor models.ActorContext, id string) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get comment: %w", err)
	}

	if d := s.moderation.AuthorizeDelete(actor, comment.Descriptor()); !d.Allowed {
		return d.Err()
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.logger.Info("comment deleted",
		"comment_id", id,
		"actor_id", actor.ID,
		"author_id", comment.AuthorID,
	)
	return nil
}

// ToggleLike flips the actor's membership in the comment's like set. The
// engine decides the intended mutation from a snapshot; the repository
// applies it as one atomic statement and returns the authoritative count.
func (s *commentService) ToggleLike(ctx context.Context, actor models.ActorContext, commentID string) (*services.LikeResult, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}

	mutation, err := s.moderation.ToggleLike(actor, comment)
	if err != nil {
		return nil, err
	}

	var count int
	if mutation.Liked {
		count, err = s.commentRepo.AddLike(ctx, commentID, actor.ID)
	} else {
		count, err = s.commentRepo.RemoveLike(ctx, commentID, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	return &services.LikeResult{Liked: mutation.Liked, LikeCount: count}, nil
}

// validUUID is an ozzo validation rule for uuid-formatted ids
func validUUID(value interface{}) error {
	s, _ := value.(string)
	if _, err := uuid.Parse(s); err != nil {
		return errors.New("must be a valid UUID")
	}
	return nil
}
