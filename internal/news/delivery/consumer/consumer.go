package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/common"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// Invalidator drops a scope from a local cache tier.
type Invalidator interface {
	Delete(ctx context.Context, scope string) error
}

// InvalidationConsumer tails the invalidation stream and evicts the announced scopes from
// the local tier, so the next read falls through to the shared store. Every API replica
// reads the whole stream; there is no consumer group.
type InvalidationConsumer struct {
	redisClient redis.Cmdable
	invalidator Invalidator
	logger      *logger.Logger
	block       time.Duration
	lastID      string
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// NewInvalidationConsumer creates a consumer that only sees events published after it starts.
func NewInvalidationConsumer(redisClient redis.Cmdable, invalidator Invalidator, log *logger.Logger) *InvalidationConsumer {
	return &InvalidationConsumer{
		redisClient: redisClient,
		invalidator: invalidator,
		logger:      log.Named("invalidation-consumer"),
		block:       2 * time.Second,
		lastID:      "$",
		stopChan:    make(chan struct{}),
	}
}

// Start begins the read loop in the background.
func (c *InvalidationConsumer) Start(ctx context.Context) {
	c.logger.Info("Invalidation consumer started", logger.StringField("stream", common.RedisStreamCacheInvalidate))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Invalidation consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Invalidation consumer stopping")
				return
			default:
				c.ProcessOnce(ctx)
			}
		}
	})
}

// ProcessOnce blocks for at most one read and applies any events received. It returns the number applied.
func (c *InvalidationConsumer) ProcessOnce(ctx context.Context) int {
	streams, err := c.redisClient.XRead(ctx, &redis.XReadArgs{
		Streams: []string{common.RedisStreamCacheInvalidate, c.lastID},
		Count:   16,
		Block:   c.block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
			return 0
		}
		c.logger.Error("Failed to read from stream", logger.ErrorField(err))
		if !utils.ShouldContinue(ctx, c.logger) {
			return 0
		}
		select {
		case <-ctx.Done():
		case <-time.After(c.block):
		}
		return 0
	}

	applied := 0
	for _, stream := range streams {
		for _, message := range stream.Messages {
			c.lastID = message.ID
			if c.apply(ctx, message) {
				applied++
			}
		}
	}
	return applied
}

func (c *InvalidationConsumer) apply(ctx context.Context, message redis.XMessage) bool {
	raw, ok := message.Values["payload"].(string)
	if !ok {
		c.logger.Error("field 'payload' not found or not a string in stream message", logger.StringField("message_id", message.ID))
		return false
	}
	var event dto.CacheInvalidation
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		c.logger.Error("Failed to unmarshal invalidation", logger.ErrorField(err), logger.StringField("message_id", message.ID))
		return false
	}
	if err := c.invalidator.Delete(ctx, event.Scope); err != nil {
		c.logger.Error("Failed to evict scope", logger.ErrorField(err), logger.StringField("scope", event.Scope))
		return false
	}
	c.logger.Info("Evicted scope after refresh", logger.StringField("scope", event.Scope), logger.Field("changed", event.Changed))
	return true
}

// Stop gracefully shuts down the consumer.
func (c *InvalidationConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Invalidation consumer stopped")
}
