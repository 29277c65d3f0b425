package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spacerent/space-rental-backend/internal/apperror"
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository/postgres"
	"github.com/spacerent/space-rental-backend/internal/service"
	"github.com/spacerent/space-rental-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImageService(t *testing.T) (*service.ImageService, *testutil.FakeObjectStore, *testutil.TestDB) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	store := testutil.NewFakeObjectStore()
	return service.NewImageService(repos.Image, store), store, testDB
}

func upload(content, filename, contentType string) service.ImageUpload {
	return service.ImageUpload{
		Reader:      strings.NewReader(content),
		Size:        int64(len(content)),
		Filename:    filename,
		ContentType: contentType,
	}
}

func TestImageService_CreateSingle(t *testing.T) {
	imageService, store, testDB := newImageService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	t.Run("stores the asset and its metadata", func(t *testing.T) {
		image, err := imageService.CreateSingle(ctx, upload("fake-png-bytes", "photo.png", "image/png"), owner.ID)
		require.NoError(t, err)

		assert.Equal(t, "png", image.Extension)
		assert.Equal(t, "image/png", image.MimeType)
		assert.Equal(t, owner.ID, image.OwnerID)
		assert.True(t, strings.HasSuffix(image.URL, image.AssetKey))
		assert.True(t, store.Has(image.AssetKey))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := imageService.CreateSingle(ctx, service.ImageUpload{}, owner.ID)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestImageService_Remove(t *testing.T) {
	imageService, store, testDB := newImageService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	image, err := imageService.CreateSingle(ctx, upload("bytes", "a.jpg", "image/jpeg"), owner.ID)
	require.NoError(t, err)

	t.Run("only the owner may remove", func(t *testing.T) {
		err := imageService.Remove(ctx, image.ID, stranger.ID)
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		assert.True(t, store.Has(image.AssetKey))
	})

	t.Run("remove deletes asset and metadata", func(t *testing.T) {
		require.NoError(t, imageService.Remove(ctx, image.ID, owner.ID))
		assert.False(t, store.Has(image.AssetKey))

		var count int64
		require.NoError(t, testDB.DB.Model(&domain.Image{}).Where("id = ?", image.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown image", func(t *testing.T) {
		err := imageService.Remove(ctx, uuid.New(), owner.ID)
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}
