package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
)

// lookupPtr constrains PT to a pointer to a lookup entity so the generic
// service can initialize the embedded LookupBase.
type lookupPtr[T any] interface {
	*T
	Base() *domain.LookupBase
}

// LookupService is the one service behind all seven feature/type lookup
// collections; they share a shape and differ only in table.
type LookupService[T any, PT lookupPtr[T]] struct {
	repo repository.Repository[T]
}

func NewLookupService[T any, PT lookupPtr[T]](repo repository.Repository[T]) *LookupService[T, PT] {
	return &LookupService[T, PT]{repo: repo}
}

func (s *LookupService[T, PT]) Create(ctx context.Context, name string, userID uuid.UUID) (*T, error) {
	if name == "" {
		return nil, apperror.Validation("name is required")
	}

	var rec T
	base := PT(&rec).Base()
	base.ID = uuid.New()
	base.Name = name
	base.CreatedBy = userID

	if err := s.repo.Create(ctx, &rec); err != nil {
		return nil, apperror.Reclassify(err, "error creating new record")
	}
	return &rec, nil
}

func (s *LookupService[T, PT]) List(ctx context.Context, query ListQuery) (*Paginated[T], error) {
	page, pageSize, offset := query.normalize()

	filter := repository.Filter{}
	if query.Name != "" {
		filter.Like = map[string]string{"name": query.Name}
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not list records")
	}

	records, err := s.repo.Find(ctx, filter, repository.ListOptions{Limit: pageSize, Offset: offset})
	if err != nil {
		return nil, apperror.Reclassify(err, "could not list records")
	}

	return &Paginated[T]{Total: total, Page: page, PageSize: pageSize, Records: records}, nil
}

func (s *LookupService[T, PT]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not get record")
	}
	return rec, nil
}

func (s *LookupService[T, PT]) Update(ctx context.Context, id uuid.UUID, name string, userID uuid.UUID) (*T, error) {
	if name == "" {
		return nil, apperror.Validation("name is required")
	}

	rec, err := s.repo.UpdateByID(ctx, id, map[string]any{
		"name":       name,
		"updated_by": userID,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, apperror.Reclassify(err, "error updating record")
	}
	return rec, nil
}

func (s *LookupService[T, PT]) Remove(ctx context.Context, id uuid.UUID) error {
	removed, err := s.repo.RemoveByID(ctx, id)
	if err != nil {
		return apperror.Reclassify(err, "could not delete record")
	}
	if !removed {
		return apperror.Validation("could not delete record with provided ID")
	}
	return nil
}
