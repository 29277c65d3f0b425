package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/cache"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
)

type SpaceService struct {
	spaces            repository.SpaceRepository
	types             repository.Repository[domain.SpaceType]
	accessMethods     repository.Repository[domain.SpaceAccessMethod]
	storageConditions repository.Repository[domain.StorageCondition]
	unloadingMovings  repository.Repository[domain.UnloadingMoving]
	securities        repository.Repository[domain.SpaceSecurity]
	schedules         repository.Repository[domain.SpaceSchedule]
	images            *ImageService
	cardCache         *cache.Store
}

func NewSpaceService(repos *repository.Repositories, images *ImageService, cardCache *cache.Store) *SpaceService {
	return &SpaceService{
		spaces:            repos.Space,
		types:             repos.SpaceType,
		accessMethods:     repos.SpaceAccessMethod,
		storageConditions: repos.StorageCondition,
		unloadingMovings:  repos.UnloadingMoving,
		securities:        repos.SpaceSecurity,
		schedules:         repos.SpaceSchedule,
		images:            images,
		cardCache:         cardCache,
	}
}

type CreateSpaceInput struct {
	Name               string
	Description        string
	Location           string
	Area               float64
	Height             float64
	PricePerMonth      float64
	MinimumBookingDays int

	TypeID         uuid.UUID
	AccessMethodID uuid.UUID

	StorageConditionIDs []uuid.UUID
	UnloadingMovingIDs  []uuid.UUID
	SpaceSecurityIDs    []uuid.UUID
	SpaceScheduleIDs    []uuid.UUID

	Images []ImageUpload
}

type UpdateSpaceInput struct {
	Name               *string
	Description        *string
	Location           *string
	Area               *float64
	Height             *float64
	PricePerMonth      *float64
	MinimumBookingDays *int

	TypeID         *uuid.UUID
	AccessMethodID *uuid.UUID

	StorageConditionIDs []uuid.UUID
	UnloadingMovingIDs  []uuid.UUID
	SpaceSecurityIDs    []uuid.UUID
	SpaceScheduleIDs    []uuid.UUID
}

type ListSpaceQuery struct {
	ListQuery
	Status domain.SpaceStatus
}

// Create validates every referenced lookup ID against the store, uploads
// the listing images, and persists the listing with its join rows. A bad
// reference fails before anything is written.
func (s *SpaceService) Create(ctx context.Context, input CreateSpaceInput, userID uuid.UUID) (*domain.SpaceForRent, error) {
	if err := s.validateReferences(ctx, &input.TypeID, &input.AccessMethodID,
		input.StorageConditionIDs, input.UnloadingMovingIDs, input.SpaceSecurityIDs, input.SpaceScheduleIDs); err != nil {
		return nil, err
	}

	var images []domain.Image
	if len(input.Images) > 0 {
		var err error
		images, err = s.images.CreateMultiple(ctx, input.Images, userID)
		if err != nil {
			return nil, apperror.Reclassify(err, "error creating new space")
		}
	}

	space := &domain.SpaceForRent{
		ID:                 uuid.New(),
		Name:               input.Name,
		Description:        input.Description,
		Location:           input.Location,
		Area:               input.Area,
		Height:             input.Height,
		PricePerMonth:      input.PricePerMonth,
		MinimumBookingDays: input.MinimumBookingDays,
		Status:             domain.SpaceStatusUnverified,
		TypeID:             input.TypeID,
		AccessMethodID:     input.AccessMethodID,
		StorageConditions:  lookupRefs[domain.StorageCondition](input.StorageConditionIDs),
		UnloadingMovings:   lookupRefs[domain.UnloadingMoving](input.UnloadingMovingIDs),
		SpaceSecurities:    lookupRefs[domain.SpaceSecurity](input.SpaceSecurityIDs),
		SpaceSchedules:     lookupRefs[domain.SpaceSchedule](input.SpaceScheduleIDs),
		SpaceImages:        images,
		CreatedBy:          userID,
	}
	if err := s.spaces.Create(ctx, space); err != nil {
		return nil, apperror.Reclassify(err, "error creating new space")
	}

	s.cardCache.InvalidateCardPages(ctx)
	return space, nil
}

// CardView returns one page of the denormalized card projection, served
// from cache when a fresh copy exists.
func (s *SpaceService) CardView(ctx context.Context, query ListSpaceQuery) (*Paginated[domain.SpaceCard], error) {
	page, pageSize, offset := query.normalize()

	filter := repository.Filter{Eq: map[string]any{}}
	if query.Status != "" {
		filter.Eq["status"] = query.Status
	}
	if query.Name != "" {
		filter.Like = map[string]string{"name": query.Name}
	}

	cacheKey := fmt.Sprintf("p=%d:ps=%d:name=%s:status=%s", page, pageSize, query.Name, query.Status)
	var cached Paginated[domain.SpaceCard]
	if s.cardCache.GetCardPage(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	total, err := s.spaces.Count(ctx, filter)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not list spaces")
	}

	cards, err := s.spaces.FindForCardView(ctx, filter, offset, pageSize)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not list spaces")
	}

	result := &Paginated[domain.SpaceCard]{Total: total, Page: page, PageSize: pageSize, Records: cards}
	s.cardCache.SetCardPage(ctx, cacheKey, result)
	return result, nil
}

// Detail returns the fully populated single-listing view.
func (s *SpaceService) Detail(ctx context.Context, id uuid.UUID) (*domain.SpaceDetail, error) {
	detail, err := s.spaces.FindOnePopulatedByID(ctx, id)
	if err != nil {
		return nil, apperror.Reclassify(err, "could not get space")
	}
	return detail, nil
}

// Update applies the provided fields and rewrites any provided lookup
// lists, validating references first.
func (s *SpaceService) Update(ctx context.Context, id uuid.UUID, input UpdateSpaceInput, userID uuid.UUID) (*domain.SpaceForRent, error) {
	if err := s.validateReferences(ctx, input.TypeID, input.AccessMethodID,
		input.StorageConditionIDs, input.UnloadingMovingIDs, input.SpaceSecurityIDs, input.SpaceScheduleIDs); err != nil {
		return nil, err
	}

	changes := map[string]any{"updated_by": userID}
	setIf(changes, "name", input.Name)
	setIf(changes, "description", input.Description)
	setIf(changes, "location", input.Location)
	setIf(changes, "area", input.Area)
	setIf(changes, "height", input.Height)
	setIf(changes, "price_per_month", input.PricePerMonth)
	setIf(changes, "minimum_booking_days", input.MinimumBookingDays)
	setIf(changes, "type_id", input.TypeID)
	setIf(changes, "access_method_id", input.AccessMethodID)

	space, err := s.spaces.UpdateByID(ctx, id, changes)
	if err != nil {
		return nil, apperror.Reclassify(err, "error updating space")
	}

	// Nil ID lists leave the matching join table untouched.
	if input.StorageConditionIDs != nil || input.UnloadingMovingIDs != nil ||
		input.SpaceSecurityIDs != nil || input.SpaceScheduleIDs != nil {
		assoc := &domain.SpaceForRent{
			ID:                space.ID,
			StorageConditions: lookupRefs[domain.StorageCondition](input.StorageConditionIDs),
			UnloadingMovings:  lookupRefs[domain.UnloadingMoving](input.UnloadingMovingIDs),
			SpaceSecurities:   lookupRefs[domain.SpaceSecurity](input.SpaceSecurityIDs),
			SpaceSchedules:    lookupRefs[domain.SpaceSchedule](input.SpaceScheduleIDs),
		}
		if err := s.spaces.ReplaceAssociations(ctx, assoc); err != nil {
			return nil, apperror.Reclassify(err, "error updating space")
		}
	}

	s.cardCache.InvalidateCardPages(ctx)
	return space, nil
}

// Verify marks a listing as verified by the given admin.
func (s *SpaceService) Verify(ctx context.Context, id, adminID uuid.UUID) (*domain.SpaceForRent, error) {
	space, err := s.spaces.UpdateByID(ctx, id, map[string]any{
		"status":      domain.SpaceStatusVerified,
		"verified_by": adminID,
	})
	if err != nil {
		return nil, apperror.Reclassify(err, "error verifying space")
	}

	s.cardCache.InvalidateCardPages(ctx)
	return space, nil
}

// Remove hard-deletes a listing. Join rows, reviews and bookings that
// reference it go with it.
func (s *SpaceService) Remove(ctx context.Context, id uuid.UUID) error {
	removed, err := s.spaces.RemoveByID(ctx, id)
	if err != nil {
		return apperror.Reclassify(err, "could not delete space")
	}
	if !removed {
		return apperror.Validation("could not delete space with provided ID")
	}

	s.cardCache.InvalidateCardPages(ctx)
	return nil
}

// validateReferences checks every non-nil/non-empty lookup reference
// against its table before any write happens.
func (s *SpaceService) validateReferences(
	ctx context.Context,
	typeID, accessMethodID *uuid.UUID,
	storageConditionIDs, unloadingMovingIDs, securityIDs, scheduleIDs []uuid.UUID,
) error {
	if typeID != nil {
		if ok, err := s.types.ValidateIDs(ctx, []uuid.UUID{*typeID}); err != nil || !ok {
			return refError("space type", err)
		}
	}
	if accessMethodID != nil {
		if ok, err := s.accessMethods.ValidateIDs(ctx, []uuid.UUID{*accessMethodID}); err != nil || !ok {
			return refError("access method", err)
		}
	}
	if len(storageConditionIDs) > 0 {
		if ok, err := s.storageConditions.ValidateIDs(ctx, storageConditionIDs); err != nil || !ok {
			return refError("storage condition", err)
		}
	}
	if len(unloadingMovingIDs) > 0 {
		if ok, err := s.unloadingMovings.ValidateIDs(ctx, unloadingMovingIDs); err != nil || !ok {
			return refError("unloading/moving option", err)
		}
	}
	if len(securityIDs) > 0 {
		if ok, err := s.securities.ValidateIDs(ctx, securityIDs); err != nil || !ok {
			return refError("space security feature", err)
		}
	}
	if len(scheduleIDs) > 0 {
		if ok, err := s.schedules.ValidateIDs(ctx, scheduleIDs); err != nil || !ok {
			return refError("space schedule", err)
		}
	}
	return nil
}

func refError(kind string, err error) error {
	if err != nil {
		return apperror.Reclassify(err, "could not validate "+kind)
	}
	return apperror.Validation("invalid " + kind)
}

func setIf[T any](changes map[string]any, column string, value *T) {
	if value != nil {
		changes[column] = *value
	}
}

// lookupRefs builds association stubs carrying only IDs. A nil input
// stays nil so callers can distinguish "unchanged" from "cleared".
func lookupRefs[T any](ids []uuid.UUID) []T {
	if ids == nil {
		return nil
	}
	refs := make([]T, len(ids))
	for i, id := range ids {
		if rec, ok := any(&refs[i]).(interface{ Base() *domain.LookupBase }); ok {
			rec.Base().ID = id
		}
	}
	return refs
}
