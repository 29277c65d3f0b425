package service

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
	"github.com/spacerent/space-rental-backend/internal/storage"
)

// ImageUpload carries the bytes and metadata of one incoming image file.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

type ImageService struct {
	images repository.Repository[domain.Image]
	store  storage.ObjectStore
}

func NewImageService(images repository.Repository[domain.Image], store storage.ObjectStore) *ImageService {
	return &ImageService{images: images, store: store}
}

// CreateSingle streams one file to the object store and records its
// metadata for the given owner.
func (s *ImageService) CreateSingle(ctx context.Context, upload ImageUpload, ownerID uuid.UUID) (*domain.Image, error) {
	if upload.Reader == nil {
		return nil, apperror.Validation("no image file provided")
	}

	ext := strings.TrimPrefix(path.Ext(upload.Filename), ".")
	id := uuid.New()
	key := id.String()
	if ext != "" {
		key += "." + ext
	}

	url, err := s.store.Put(ctx, key, upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		return nil, apperror.Unexpected("failed to upload image", err)
	}

	image := &domain.Image{
		ID:        id,
		URL:       url,
		AssetKey:  key,
		Extension: ext,
		Size:      upload.Size,
		MimeType:  upload.ContentType,
		OwnerID:   ownerID,
	}
	if err := s.images.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// CreateMultiple uploads a batch of files for one owner.
func (s *ImageService) CreateMultiple(ctx context.Context, uploads []ImageUpload, ownerID uuid.UUID) ([]domain.Image, error) {
	if len(uploads) == 0 {
		return nil, apperror.Validation("no image files provided")
	}

	images := make([]domain.Image, 0, len(uploads))
	for _, upload := range uploads {
		image, err := s.CreateSingle(ctx, upload, ownerID)
		if err != nil {
			return nil, err
		}
		images = append(images, *image)
	}
	return images, nil
}

// Remove deletes an image owned by ownerID. The remote asset goes first;
// the metadata row is only removed once the store confirms the delete, so
// a crash can orphan a row but never an unreachable asset reference.
func (s *ImageService) Remove(ctx context.Context, imageID, ownerID uuid.UUID) error {
	image, err := s.images.FindOneWhere(ctx, repository.Filter{
		Eq: map[string]any{"id": imageID, "owner_id": ownerID},
	})
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return apperror.NotFound("could not find image with provided ID")
		}
		return err
	}

	if err := s.store.Delete(ctx, image.AssetKey); err != nil {
		return apperror.Unexpected("failed to delete image asset", err)
	}

	if _, err := s.images.RemoveByID(ctx, image.ID); err != nil {
		return err
	}
	return nil
}
