package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/cache"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
)

type ReviewService struct {
	reviews   repository.ReviewRepository
	spaces    repository.SpaceRepository
	cardCache *cache.Store
}

func NewReviewService(reviews repository.ReviewRepository, spaces repository.SpaceRepository, cardCache *cache.Store) *ReviewService {
	return &ReviewService{reviews: reviews, spaces: spaces, cardCache: cardCache}
}

type CreateReviewInput struct {
	SpaceID uuid.UUID
	Rating  float64
	Comment string
}

// Create records a review against an existing space. The rating must be
// on the 1 to 5 half-step scale and the space reference must resolve.
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput, reviewerID uuid.UUID) (*domain.SpaceReview, error) {
	if !domain.ValidRating(input.Rating) {
		return nil, apperror.Validation("rating must be between 1 and 5 in half-point steps")
	}

	ok, err := s.spaces.ValidateIDs(ctx, []uuid.UUID{input.SpaceID})
	if err != nil {
		return nil, apperror.Reclassify(err, "could not create review")
	}
	if !ok {
		return nil, apperror.Validation("invalid space")
	}

	review := &domain.SpaceReview{
		ID:         uuid.New(),
		SpaceID:    input.SpaceID,
		ReviewerID: reviewerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		CreatedBy:  reviewerID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, apperror.Reclassify(err, "could not create review")
	}

	// Review counts and averages are part of the cached card projection.
	s.cardCache.InvalidateCardPages(ctx)
	return review, nil
}

// List returns one page of reviews with reviewer identities joined.
func (s *ReviewService) List(ctx context.Context, query ListQuery) (*Paginated[domain.SpaceReview], error) {
	page, pageSize, offset := query.normalize()

	filter := repository.Filter{}
	total, err := s.reviews.Count(ctx, filter)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not list reviews")
	}
	records, err := s.reviews.FindWithReviewer(ctx, filter, repository.ListOptions{Limit: pageSize, Offset: offset})
	if err != nil {
		return nil, apperror.Reclassify(err, "could not list reviews")
	}
	return &Paginated[domain.SpaceReview]{Total: total, Page: page, PageSize: pageSize, Records: records}, nil
}

// ListBySpace returns every review of one space with reviewer identities
// joined. A space with no reviews reports NotFound.
func (s *ReviewService) ListBySpace(ctx context.Context, spaceID uuid.UUID) ([]domain.SpaceReview, error) {
	filter := repository.Filter{Eq: map[string]any{"space_id": spaceID}}
	records, err := s.reviews.FindWithReviewer(ctx, filter, repository.ListOptions{})
	if err != nil {
		return nil, apperror.Reclassify(err, "could not list reviews")
	}
	if len(records) == 0 {
		return nil, apperror.NotFound("no reviews found for provided space ID")
	}
	return records, nil
}

// Remove deletes a review. Administrators may delete any review; other
// users may only delete their own.
func (s *ReviewService) Remove(ctx context.Context, id, userID uuid.UUID, role domain.UserRole) error {
	if !role.IsAdministrative() {
		if _, err := s.reviews.FindOneWhere(ctx, repository.Filter{
			Eq: map[string]any{"id": id, "reviewer_id": userID},
		}); err != nil {
			return apperror.Reclassify(err, "could not delete review")
		}
	}

	removed, err := s.reviews.RemoveByID(ctx, id)
	if err != nil {
		return apperror.Reclassify(err, "could not delete review")
	}
	if !removed {
		return apperror.Validation("could not delete review with provided ID")
	}

	s.cardCache.InvalidateCardPages(ctx)
	return nil
}
