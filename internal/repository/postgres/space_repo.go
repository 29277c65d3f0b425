package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
	"gorm.io/gorm"
)

type spaceRepository struct {
	*Repo[domain.SpaceForRent]
	db *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) *spaceRepository {
	return &spaceRepository{Repo: NewRepo[domain.SpaceForRent](db), db: db}
}

// FindForCardView assembles the flattened card projection in one query:
// review count and mean rating, the first listing image as cover, the
// access-method name, and the verifying user's name and avatar. Missing
// joined data comes back as zero values, never as a failed query.
func (r *spaceRepository) FindForCardView(ctx context.Context, filter repository.Filter, offset, limit int) ([]domain.SpaceCard, error) {
	where := "1 = 1"
	args := []any{}
	for col, v := range filter.Eq {
		where += fmt.Sprintf(" AND s.%s = ?", col)
		args = append(args, v)
	}
	for col, v := range filter.Like {
		where += fmt.Sprintf(" AND s.%s ILIKE ?", col)
		args = append(args, "%"+v+"%")
	}
	args = append(args, offset, limit)

	query := `
		SELECT
			s.id,
			s.name,
			s.location,
			s.price_per_month,
			s.minimum_booking_days,
			COALESCE(rv.review_count, 0)   AS review_count,
			COALESCE(rv.average_rating, 0) AS average_rating,
			COALESCE(ci.url, '')           AS cover_image,
			COALESCE(am.name, '')          AS access_method,
			COALESCE(vu.full_name, '')     AS verifying_user_name,
			COALESCE(vi.url, '')           AS verifying_user_image
		FROM space_for_rents s
		LEFT JOIN (
			SELECT space_id, COUNT(*) AS review_count, AVG(rating) AS average_rating
			FROM space_reviews
			GROUP BY space_id
		) rv ON rv.space_id = s.id
		LEFT JOIN LATERAL (
			SELECT i.url
			FROM space_images si
			JOIN images i ON i.id = si.image_id
			WHERE si.space_for_rent_id = s.id
			ORDER BY i.created_at
			LIMIT 1
		) ci ON true
		LEFT JOIN space_access_methods am ON am.id = s.access_method_id
		LEFT JOIN users vu ON vu.id = s.verified_by
		LEFT JOIN images vi ON vi.id = vu.profile_picture_id
		WHERE ` + where + `
		ORDER BY s.created_at DESC
		OFFSET ? LIMIT ?`

	var cards []domain.SpaceCard
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&cards).Error; err != nil {
		return nil, apperror.Unexpected("failed to query card view", err)
	}
	return cards, nil
}

// FindOnePopulatedByID resolves every reference on a single listing:
// lookup names, feature lists, image records, and the creator/updater/
// verifier identities (email and name only, avatar URL for the verifier).
func (r *spaceRepository) FindOnePopulatedByID(ctx context.Context, id uuid.UUID) (*domain.SpaceDetail, error) {
	var space domain.SpaceForRent
	err := r.db.WithContext(ctx).
		Preload("Type").
		Preload("AccessMethod").
		Preload("StorageConditions").
		Preload("UnloadingMovings").
		Preload("SpaceSecurities").
		Preload("SpaceSchedules").
		Preload("SpaceImages").
		First(&space, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("space not found with provided ID")
		}
		return nil, apperror.Unexpected("failed to query space", err)
	}

	detail := &domain.SpaceDetail{
		ID:                 space.ID,
		Name:               space.Name,
		Description:        space.Description,
		Location:           space.Location,
		Area:               space.Area,
		Height:             space.Height,
		PricePerMonth:      space.PricePerMonth,
		MinimumBookingDays: space.MinimumBookingDays,
		Status:             space.Status,
		StorageConditions:  lookupNames(space.StorageConditions),
		UnloadingMovings:   lookupNames(space.UnloadingMovings),
		SpaceSecurities:    lookupNames(space.SpaceSecurities),
		SpaceSchedules:     lookupNames(space.SpaceSchedules),
		SpaceImages:        space.SpaceImages,
	}
	if space.Type != nil {
		detail.Type = space.Type.Name
	}
	if space.AccessMethod != nil {
		detail.AccessMethod = space.AccessMethod.Name
	}

	detail.CreatedBy, err = r.userRef(ctx, &space.CreatedBy, false)
	if err != nil {
		return nil, err
	}
	detail.UpdatedBy, err = r.userRef(ctx, space.UpdatedBy, false)
	if err != nil {
		return nil, err
	}
	detail.VerifiedBy, err = r.userRef(ctx, space.VerifiedBy, true)
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// ReplaceAssociations rewrites the listing's join-table rows to match the
// slices set on space. A nil slice leaves that association untouched; an
// empty non-nil slice clears it.
func (r *spaceRepository) ReplaceAssociations(ctx context.Context, space *domain.SpaceForRent) error {
	tx := r.db.WithContext(ctx).Model(space)
	replace := func(name string, value any, isNil bool) error {
		if isNil {
			return nil
		}
		if err := tx.Association(name).Replace(value); err != nil {
			return apperror.Unexpected("failed to update space associations", err)
		}
		return nil
	}

	if err := replace("StorageConditions", space.StorageConditions, space.StorageConditions == nil); err != nil {
		return err
	}
	if err := replace("UnloadingMovings", space.UnloadingMovings, space.UnloadingMovings == nil); err != nil {
		return err
	}
	if err := replace("SpaceSecurities", space.SpaceSecurities, space.SpaceSecurities == nil); err != nil {
		return err
	}
	if err := replace("SpaceSchedules", space.SpaceSchedules, space.SpaceSchedules == nil); err != nil {
		return err
	}
	return replace("SpaceImages", space.SpaceImages, space.SpaceImages == nil)
}

func (r *spaceRepository) userRef(ctx context.Context, id *uuid.UUID, withPicture bool) (*domain.UserRef, error) {
	if id == nil || *id == uuid.Nil {
		return nil, nil
	}

	var user domain.User
	q := r.db.WithContext(ctx)
	if withPicture {
		q = q.Preload("ProfilePicture")
	}
	err := q.First(&user, "id = ?", *id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Unexpected("failed to query referenced user", err)
	}

	ref := &domain.UserRef{Email: user.Email, FullName: user.FullName}
	if user.ProfilePicture != nil {
		ref.ProfilePicture = &user.ProfilePicture.URL
	}
	return ref, nil
}

func lookupNames[T domain.LookupRecord](recs []T) []string {
	names := make([]string, 0, len(recs))
	for i := range recs {
		names = append(names, recs[i].LookupName())
	}
	return names
}
