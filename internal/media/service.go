package media

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
	"bazaar/internal/domain/repositories"
	"bazaar/internal/policy"

	"github.com/google/uuid"
)

// Only raster image types a browser can render inline are accepted.
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadTicket is a one-shot authorization to upload a single image.
type UploadTicket struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

// Service authorizes media uploads against listing ownership before
// handing out presigned URLs.
type Service struct {
	store       *Store
	listingRepo repositories.ListingRepository
	guard       *policy.OwnershipGuard
	logger      *slog.Logger
}

// NewService creates a new media service
func NewService(store *Store, listingRepo repositories.ListingRepository, guard *policy.OwnershipGuard, logger *slog.Logger) *Service {
	return &Service{
		store:       store,
		listingRepo: listingRepo,
		guard:       guard,
		logger:      logger,
	}
}

// PresignListingImage returns an upload ticket for an image attached to the
// given listing. Only the listing owner (or an admin) can obtain one.
func (s *Service) PresignListingImage(ctx context.Context, actor models.ActorContext, listingID, contentType string) (*UploadTicket, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", domain.ErrValidation, contentType)
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	if d := s.guard.Authorize(actor, listing.Descriptor(), policy.ActionUpdate); !d.Allowed {
		return nil, d.Err()
	}

	key := path.Join("listings", listingID, uuid.NewString()+ext)
	url, err := s.store.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("presigned listing image upload", "listing_id", listingID, "key", key)
	return &UploadTicket{Key: key, UploadURL: url}, nil
}
