// Package cache holds short-lived card-view pages in Redis. A nil client
// disables caching; every method degrades to a miss or a no-op.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const cardViewPrefix = "cards:"

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Store{client: client, ttl: ttl}
}

// GetCardPage reads a cached card-view page into dest. It returns false on
// miss, on unmarshal failure, or when caching is disabled.
func (s *Store) GetCardPage(ctx context.Context, key string, dest any) bool {
	if s == nil || s.client == nil {
		return false
	}
	raw, err := s.client.Get(ctx, cardViewPrefix+key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

// SetCardPage stores a card-view page under the given key.
func (s *Store) SetCardPage(ctx context.Context, key string, value any) {
	if s == nil || s.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, cardViewPrefix+key, raw, s.ttl).Err(); err != nil {
		log.Printf("ERROR [cache.Store] set %s failed: %v", key, err)
	}
}

// InvalidateCardPages drops every cached card-view page. Called whenever a
// listing or anything projected onto its card changes.
func (s *Store) InvalidateCardPages(ctx context.Context) {
	if s == nil || s.client == nil {
		return
	}
	iter := s.client.Scan(ctx, 0, cardViewPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("ERROR [cache.Store] delete %s failed: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("ERROR [cache.Store] scan failed: %v", err)
	}
}

// NewRedisClient connects to Redis and verifies the connection with a
// short ping. It returns nil when Redis is unreachable so callers can run
// without caching.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("ERROR [cache] redis unreachable at %s, caching disabled: %v", addr, err)
		return nil
	}
	return client
}
