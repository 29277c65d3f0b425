package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spacerent/space-rental-backend/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type page struct {
	Names []string `json:"names"`
}

func newTestStore(t *testing.T) (*cache.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewStore(client, time.Minute), mr
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.SetCardPage(ctx, "page=1", page{Names: []string{"warehouse a", "basement b"}})

	var got page
	require.True(t, store.GetCardPage(ctx, "page=1", &got))
	assert.Equal(t, []string{"warehouse a", "basement b"}, got.Names)
}

func TestStore_MissReturnsFalse(t *testing.T) {
	store, _ := newTestStore(t)

	var got page
	assert.False(t, store.GetCardPage(context.Background(), "absent", &got))
}

func TestStore_EntriesExpire(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	store.SetCardPage(ctx, "page=1", page{Names: []string{"a"}})
	mr.FastForward(2 * time.Minute)

	var got page
	assert.False(t, store.GetCardPage(ctx, "page=1", &got))
}

func TestStore_InvalidateDropsAllPages(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.SetCardPage(ctx, "page=1", page{Names: []string{"a"}})
	store.SetCardPage(ctx, "page=2", page{Names: []string{"b"}})

	store.InvalidateCardPages(ctx)

	var got page
	assert.False(t, store.GetCardPage(ctx, "page=1", &got))
	assert.False(t, store.GetCardPage(ctx, "page=2", &got))
}

func TestStore_NilClientDisablesCaching(t *testing.T) {
	store := cache.NewStore(nil, time.Minute)
	ctx := context.Background()

	store.SetCardPage(ctx, "page=1", page{Names: []string{"a"}})
	var got page
	assert.False(t, store.GetCardPage(ctx, "page=1", &got))
	store.InvalidateCardPages(ctx)
}
