package consumer

import (
	"context"
	"testing"
	"time"

	"golang-news-globe/internal/news/dto"
	"golang-news-globe/internal/news/repository"
	"golang-news-globe/pkg/common"
	"golang-news-globe/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStream is an in-memory stream behind the two commands the consumer and publisher use.
type fakeStream struct {
	redis.Cmdable
	messages []redis.XMessage
	lastArgs *redis.XReadArgs
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	values := make(map[string]interface{}, len(a.Values.(map[string]interface{})))
	for k, v := range a.Values.(map[string]interface{}) {
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		values[k] = v
	}
	id := time.Unix(int64(len(f.messages)+1), 0).Format("20060102150405") + "-0"
	f.messages = append(f.messages, redis.XMessage{ID: id, Values: values})
	return redis.NewStringResult(id, nil)
}

func (f *fakeStream) XRead(_ context.Context, a *redis.XReadArgs) *redis.XStreamSliceCmd {
	f.lastArgs = a
	if len(f.messages) == 0 {
		return redis.NewXStreamSliceCmdResult(nil, redis.Nil)
	}
	msgs := f.messages
	f.messages = nil
	return redis.NewXStreamSliceCmdResult([]redis.XStream{{Stream: common.RedisStreamCacheInvalidate, Messages: msgs}}, nil)
}

type recordingInvalidator struct{ scopes []string }

func (r *recordingInvalidator) Delete(_ context.Context, scope string) error {
	r.scopes = append(r.scopes, scope)
	return nil
}

func TestProcessOnceEvictsPublishedScopes(t *testing.T) {
	ctx := context.Background()
	stream := &fakeStream{}
	inv := &recordingInvalidator{}
	c := NewInvalidationConsumer(stream, inv, logger.NewNop())

	assert.Equal(t, 0, c.ProcessOnce(ctx))
	assert.Equal(t, []string{common.RedisStreamCacheInvalidate, "$"}, stream.lastArgs.Streams)

	pub := repository.NewCacheEventPublisher(stream, 100)
	require.NoError(t, pub.Publish(ctx, dto.CacheInvalidation{Scope: "all", Changed: true, Articles: 12}))
	require.NoError(t, pub.Publish(ctx, dto.CacheInvalidation{Scope: "category:Sports"}))

	assert.Equal(t, 2, c.ProcessOnce(ctx))
	assert.Equal(t, []string{"all", "category:Sports"}, inv.scopes)

	c.ProcessOnce(ctx)
	assert.NotEqual(t, "$", stream.lastArgs.Streams[1])
}

func TestProcessOnceSkipsMalformedMessages(t *testing.T) {
	stream := &fakeStream{messages: []redis.XMessage{
		{ID: "1-0", Values: map[string]interface{}{"other": "x"}},
		{ID: "2-0", Values: map[string]interface{}{"payload": "{not json"}},
	}}
	inv := &recordingInvalidator{}
	c := NewInvalidationConsumer(stream, inv, logger.NewNop())

	assert.Equal(t, 0, c.ProcessOnce(context.Background()))
	assert.Empty(t, inv.scopes)
}
