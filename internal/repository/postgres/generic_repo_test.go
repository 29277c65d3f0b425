package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
	"github.com/spacerent/space-rental-backend/internal/repository/postgres"
	"github.com/spacerent/space-rental-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo_ValidateIDs(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	a := testutil.SeedLookup[domain.SpaceType](t, testDB.DB, "garage", user.ID)
	b := testutil.SeedLookup[domain.SpaceType](t, testDB.DB, "basement", user.ID)

	tests := []struct {
		name string
		ids  []uuid.UUID
		want bool
	}{
		{name: "empty list", ids: nil, want: false},
		{name: "all exist", ids: []uuid.UUID{a.ID, b.ID}, want: true},
		{name: "duplicates of an existing ID", ids: []uuid.UUID{a.ID, a.ID}, want: true},
		{name: "one unknown ID", ids: []uuid.UUID{a.ID, uuid.New()}, want: false},
		{name: "all unknown", ids: []uuid.UUID{uuid.New()}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := repos.SpaceType.ValidateIDs(ctx, tt.ids)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestRepo_CreateDuplicateIsConflict(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.SeedLookup[domain.SpaceType](t, testDB.DB, "garage", user.ID)

	dup := &domain.SpaceType{}
	dup.ID = uuid.New()
	dup.Name = "garage"
	dup.CreatedBy = user.ID

	err := repos.SpaceType.Create(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestRepo_UpdateByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	rec := testutil.SeedLookup[domain.SpaceType](t, testDB.DB, "garage", user.ID)

	t.Run("returns the updated record", func(t *testing.T) {
		updated, err := repos.SpaceType.UpdateByID(ctx, rec.ID, map[string]any{"name": "lockup"})
		require.NoError(t, err)
		assert.Equal(t, "lockup", updated.Name)
	})

	t.Run("missing row is NotFound", func(t *testing.T) {
		_, err := repos.SpaceType.UpdateByID(ctx, uuid.New(), map[string]any{"name": "ghost"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestRepo_FindWithFilters(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	testutil.SeedLookup[domain.SpaceType](t, testDB.DB, "Climate Garage", user.ID)
	testutil.SeedLookup[domain.SpaceType](t, testDB.DB, "Open Yard", user.ID)

	t.Run("case-insensitive substring match", func(t *testing.T) {
		recs, err := repos.SpaceType.Find(ctx, repository.Filter{
			Like: map[string]string{"name": "garage"},
		}, repository.ListOptions{Limit: 10})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Climate Garage", recs[0].Name)
	})

	t.Run("count honors the filter", func(t *testing.T) {
		count, err := repos.SpaceType.Count(ctx, repository.Filter{
			Like: map[string]string{"name": "yard"},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("remove reports whether a row went away", func(t *testing.T) {
		rec := testutil.SeedLookup[domain.SpaceType](t, testDB.DB, "Temporary", user.ID)

		removed, err := repos.SpaceType.RemoveByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repos.SpaceType.RemoveByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}
