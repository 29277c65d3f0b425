package postgres

import (
	"context"

	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
	"gorm.io/gorm"
)

type reviewRepository struct {
	*Repo[domain.SpaceReview]
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *reviewRepository {
	return &reviewRepository{Repo: NewRepo[domain.SpaceReview](db), db: db}
}

func (r *reviewRepository) FindWithReviewer(ctx context.Context, filter repository.Filter, opts repository.ListOptions) ([]domain.SpaceReview, error) {
	q := r.db.WithContext(ctx).Model(&domain.SpaceReview{}).
		Preload("Reviewer").
		Preload("Reviewer.ProfilePicture")
	for col, v := range filter.Eq {
		q = q.Where(col+" = ?", v)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	var reviews []domain.SpaceReview
	if err := q.Find(&reviews).Error; err != nil {
		return nil, apperror.Unexpected("failed to query reviews", err)
	}
	return reviews, nil
}
