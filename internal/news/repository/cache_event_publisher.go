package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/common"

	"github.com/redis/go-redis/v9"
)

// CacheEventPublisher announces replaced cache entries to other processes.
type CacheEventPublisher interface {
	Publish(ctx context.Context, event dto.CacheInvalidation) error
}

// NewCacheEventPublisher creates a publisher writing to the invalidation stream.
func NewCacheEventPublisher(client redis.Cmdable, maxLen int64) CacheEventPublisher {
	return &cacheEventPublisher{client: client, maxLen: maxLen}
}

type cacheEventPublisher struct {
	client redis.Cmdable
	maxLen int64
}

func (p *cacheEventPublisher) Publish(ctx context.Context, event dto.CacheInvalidation) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal invalidation: %w", err)
	}
	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamCacheInvalidate,
		Values: map[string]interface{}{"payload": payload},
		MaxLen: p.maxLen,
		Approx: true,
	}).Err(); err != nil {
		return fmt.Errorf("publish invalidation for %s: %w", event.Scope, err)
	}
	return nil
}
