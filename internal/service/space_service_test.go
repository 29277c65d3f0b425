package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/cache"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository/postgres"
	"github.com/spacerent/space-rental-backend/internal/service"
	"github.com/spacerent/space-rental-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newSpaceService(t *testing.T) (*service.SpaceService, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	images := service.NewImageService(repos.Image, testutil.NewFakeObjectStore())
	return service.NewSpaceService(repos, images, cache.NewStore(nil, 30*time.Second)), testDB
}

func TestSpaceService_CardView_ReviewAggregation(t *testing.T) {
	spaceService, testDB := newSpaceService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().WithRole(domain.RoleOwner).Build(t, testDB.DB)
	reviewer, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	reviewed := testutil.NewSpaceBuilder().
		WithName("Reviewed Warehouse").
		WithCreator(owner).
		Build(t, testDB.DB)
	testutil.SeedReview(t, testDB.DB, reviewed, reviewer, 3)
	testutil.SeedReview(t, testDB.DB, reviewed, reviewer, 4)
	testutil.SeedReview(t, testDB.DB, reviewed, reviewer, 5)

	bare := testutil.NewSpaceBuilder().
		WithName("Bare Warehouse").
		WithCreator(owner).
		Build(t, testDB.DB)

	page, err := spaceService.CardView(ctx, service.ListSpaceQuery{})
	require.NoError(t, err)
	require.Len(t, page.Records, 2)

	byID := map[uuid.UUID]domain.SpaceCard{}
	for _, card := range page.Records {
		byID[card.ID] = card
	}

	assert.Equal(t, 3, byID[reviewed.ID].ReviewCount)
	assert.InDelta(t, 4.0, byID[reviewed.ID].AverageRating, 0.001)

	// A listing with no reviews reports zeroes, not an error.
	assert.Equal(t, 0, byID[bare.ID].ReviewCount)
	assert.Zero(t, byID[bare.ID].AverageRating)
	assert.Empty(t, byID[bare.ID].VerifyingUserName)
}

func TestSpaceService_CardView_VerifierJoin(t *testing.T) {
	spaceService, testDB := newSpaceService(t)
	ctx := context.Background()

	admin, _ := testutil.NewUserBuilder().
		WithRole(domain.RoleAdmin).
		WithFullName("Vera Verifier").
		Build(t, testDB.DB)
	testutil.NewSpaceBuilder().WithVerifier(admin).Build(t, testDB.DB)

	page, err := spaceService.CardView(ctx, service.ListSpaceQuery{
		Status: domain.SpaceStatusVerified,
	})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	assert.Equal(t, "Vera Verifier", page.Records[0].VerifyingUserName)
}

func TestSpaceService_CardView_NameFilterAndPaging(t *testing.T) {
	spaceService, testDB := newSpaceService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().WithRole(domain.RoleOwner).Build(t, testDB.DB)
	testutil.NewSpaceBuilder().WithName("Dockside Depot").WithCreator(owner).Build(t, testDB.DB)
	testutil.NewSpaceBuilder().WithName("Dockside Annex").WithCreator(owner).Build(t, testDB.DB)
	testutil.NewSpaceBuilder().WithName("Hilltop Barn").WithCreator(owner).Build(t, testDB.DB)

	page, err := spaceService.CardView(ctx, service.ListSpaceQuery{
		ListQuery: service.ListQuery{Page: 1, PageSize: 1, Name: "dockside"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Records, 1)
	assert.Contains(t, page.Records[0].Name, "Dockside")
}

func TestSpaceService_Create_InvalidReferences(t *testing.T) {
	spaceService, testDB := newSpaceService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().WithRole(domain.RoleOwner).Build(t, testDB.DB)
	spaceType := testutil.SeedLookup[domain.SpaceType](t, testDB.DB, "garage", owner.ID)
	accessMethod := testutil.SeedLookup[domain.SpaceAccessMethod](t, testDB.DB, "key", owner.ID)

	tests := []struct {
		name  string
		input service.CreateSpaceInput
	}{
		{
			name: "unknown space type",
			input: service.CreateSpaceInput{
				Name:           "Bad Type",
				Location:       "Nowhere",
				TypeID:         uuid.New(),
				AccessMethodID: accessMethod.ID,
			},
		},
		{
			name: "unknown access method",
			input: service.CreateSpaceInput{
				Name:           "Bad Access",
				Location:       "Nowhere",
				TypeID:         spaceType.ID,
				AccessMethodID: uuid.New(),
			},
		},
		{
			name: "one bad ID in a feature list",
			input: service.CreateSpaceInput{
				Name:                "Bad Condition",
				Location:            "Nowhere",
				TypeID:              spaceType.ID,
				AccessMethodID:      accessMethod.ID,
				StorageConditionIDs: []uuid.UUID{uuid.New()},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := spaceService.Create(ctx, tt.input, owner.ID)
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

			// Nothing may be written when a reference fails.
			var count int64
			require.NoError(t, testDB.DB.Model(&domain.SpaceForRent{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

func TestSpaceService_CreateAndDetail(t *testing.T) {
	spaceService, testDB := newSpaceService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().
		WithRole(domain.RoleOwner).
		WithFullName("Olive Owner").
		Build(t, testDB.DB)

	spaceType := testutil.SeedLookup[domain.SpaceType](t, testDB.DB, "warehouse", owner.ID)
	accessMethod := testutil.SeedLookup[domain.SpaceAccessMethod](t, testDB.DB, "keycard", owner.ID)
	conditionA := testutil.SeedLookup[domain.StorageCondition](t, testDB.DB, "climate controlled", owner.ID)
	conditionB := testutil.SeedLookup[domain.StorageCondition](t, testDB.DB, "dry", owner.ID)
	security := testutil.SeedLookup[domain.SpaceSecurity](t, testDB.DB, "cctv", owner.ID)

	created, err := spaceService.Create(ctx, service.CreateSpaceInput{
		Name:                "Harbor Warehouse",
		Description:         "Big and dry",
		Location:            "Harborside",
		Area:                120,
		Height:              4,
		PricePerMonth:       900,
		MinimumBookingDays:  7,
		TypeID:              spaceType.ID,
		AccessMethodID:      accessMethod.ID,
		StorageConditionIDs: []uuid.UUID{conditionA.ID, conditionB.ID},
		SpaceSecurityIDs:    []uuid.UUID{security.ID},
	}, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SpaceStatusUnverified, created.Status)

	detail, err := spaceService.Detail(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Harbor Warehouse", detail.Name)
	assert.Equal(t, "warehouse", detail.Type)
	assert.Equal(t, "keycard", detail.AccessMethod)
	assert.ElementsMatch(t, []string{"climate controlled", "dry"}, detail.StorageConditions)
	assert.Equal(t, []string{"cctv"}, detail.SpaceSecurities)
	require.NotNil(t, detail.CreatedBy)
	assert.Equal(t, "Olive Owner", detail.CreatedBy.FullName)
	assert.Nil(t, detail.VerifiedBy)
}

func TestSpaceService_Verify(t *testing.T) {
	spaceService, testDB := newSpaceService(t)
	ctx := context.Background()

	admin, _ := testutil.NewUserBuilder().WithRole(domain.RoleAdmin).Build(t, testDB.DB)
	space := testutil.NewSpaceBuilder().Build(t, testDB.DB)

	verified, err := spaceService.Verify(ctx, space.ID, admin.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.SpaceStatusVerified, verified.Status)
	require.NotNil(t, verified.VerifiedBy)
	assert.Equal(t, admin.ID, *verified.VerifiedBy)
}

func TestSpaceService_Remove_WithDependents(t *testing.T) {
	spaceService, testDB := newSpaceService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().WithRole(domain.RoleOwner).Build(t, testDB.DB)
	renter, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	spaceType := testutil.SeedLookup[domain.SpaceType](t, testDB.DB, "warehouse", owner.ID)
	accessMethod := testutil.SeedLookup[domain.SpaceAccessMethod](t, testDB.DB, "keycard", owner.ID)
	condition := testutil.SeedLookup[domain.StorageCondition](t, testDB.DB, "dry", owner.ID)

	space, err := spaceService.Create(ctx, service.CreateSpaceInput{
		Name:                "Busy Warehouse",
		Description:         "Fully booked",
		Location:            "Harborside",
		PricePerMonth:       600,
		TypeID:              spaceType.ID,
		AccessMethodID:      accessMethod.ID,
		StorageConditionIDs: []uuid.UUID{condition.ID},
		Images:              []service.ImageUpload{upload("photo-bytes", "front.jpg", "image/jpeg")},
	}, owner.ID)
	require.NoError(t, err)

	testutil.SeedReview(t, testDB.DB, space, renter, 4)
	require.NoError(t, testDB.DB.Create(&domain.SpaceBooking{
		ID:           uuid.New(),
		BookingCode:  "BK-00000000000000AB",
		FromDate:     datatypes.Date(time.Now()),
		ToDate:       datatypes.Date(time.Now().AddDate(0, 0, 7)),
		BookingPrice: 140,
		TotalPrice:   147,
		Status:       domain.BookingStatusPendingActions,
		SpaceID:      space.ID,
		CreatedBy:    renter.ID,
	}).Error)

	require.NoError(t, spaceService.Remove(ctx, space.ID))

	for _, table := range []string{"space_storage_conditions", "space_images", "space_reviews", "space_bookings"} {
		var count int64
		require.NoError(t, testDB.DB.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}
}

func TestSpaceService_Detail_NotFound(t *testing.T) {
	spaceService, _ := newSpaceService(t)

	_, err := spaceService.Detail(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
