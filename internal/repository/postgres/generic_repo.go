package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/repository"
	"gorm.io/gorm"
)

// Repo is the generic gorm-backed implementation of
// repository.Repository. Store errors are translated into the apperror
// taxonomy at this boundary: duplicate keys become Conflict, missing rows
// become NotFound, everything else is Unexpected.
type Repo[T any] struct {
	db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) *Repo[T] {
	return &Repo[T]{db: db}
}

func (r *Repo[T]) scope(ctx context.Context, filter repository.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T))
	for col, v := range filter.Eq {
		q = q.Where(col+" = ?", v)
	}
	for col, v := range filter.Like {
		q = q.Where(col+" ILIKE ?", "%"+v+"%")
	}
	return q
}

func (r *Repo[T]) Create(ctx context.Context, rec *T) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("record already exists with provided inputs", err)
		}
		return apperror.Unexpected("failed to create record", err)
	}
	return nil
}

func (r *Repo[T]) Find(ctx context.Context, filter repository.Filter, opts repository.ListOptions) ([]T, error) {
	q := r.scope(ctx, filter)
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	var recs []T
	if err := q.Find(&recs).Error; err != nil {
		return nil, apperror.Unexpected("failed to query records", err)
	}
	return recs, nil
}

func (r *Repo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("record not found with provided ID")
		}
		return nil, apperror.Unexpected("failed to query record by ID", err)
	}
	return &rec, nil
}

func (r *Repo[T]) FindOneWhere(ctx context.Context, filter repository.Filter) (*T, error) {
	var rec T
	err := r.scope(ctx, filter).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("record not found")
		}
		return nil, apperror.Unexpected("failed to query record", err)
	}
	return &rec, nil
}

func (r *Repo[T]) UpdateByID(ctx context.Context, id uuid.UUID, changes map[string]any) (*T, error) {
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("record already exists with provided inputs", res.Error)
		}
		return nil, apperror.Unexpected("failed to update record", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperror.NotFound("record not found with provided ID")
	}
	return r.FindByID(ctx, id)
}

func (r *Repo[T]) RemoveByID(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return false, apperror.Unexpected("failed to remove record", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *Repo[T]) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	var count int64
	if err := r.scope(ctx, filter).Count(&count).Error; err != nil {
		return 0, apperror.Unexpected("failed to count records", err)
	}
	return count, nil
}

// ValidateIDs reports whether every ID in the list exists. An empty list
// is invalid, not vacuously true. Duplicates are collapsed before the
// existence check.
func (r *Repo[T]) ValidateIDs(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}

	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Where("id IN ?", unique).Count(&count).Error
	if err != nil {
		return false, apperror.Unexpected("failed to validate IDs", err)
	}
	return count == int64(len(unique)), nil
}
