package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"golang-news-globe/pkg/common"
)

// RedisStore keeps each entry as one JSON value, so a SET replaces the entry atomically.
type RedisStore struct {
	client    redis.Cmdable
	retention time.Duration
}

// NewRedisStore creates a store whose keys expire after retention (0 means never).
func NewRedisStore(client redis.Cmdable, retention time.Duration) *RedisStore {
	return &RedisStore{client: client, retention: retention}
}

func (r *RedisStore) Name() string { return "redis" }

func key(scope string) string {
	return common.RedisCacheKeyPrefix + scope
}

func (r *RedisStore) Load(ctx context.Context, scope string) (*Entry, error) {
	raw, err := r.client.Get(ctx, key(scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key(scope), err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	for i := range entry.Articles {
		entry.Articles[i].Scope = entry.Scope
		entry.Articles[i].BatchID = entry.BatchID
		entry.Articles[i].Position = i
	}
	return &entry, nil
}

func (r *RedisStore) Save(ctx context.Context, entry Entry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := r.client.Set(ctx, key(entry.Scope), raw, r.retention).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key(entry.Scope), err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, scope string) error {
	if err := r.client.Del(ctx, key(scope)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key(scope), err)
	}
	return nil
}
