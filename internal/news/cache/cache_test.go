package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/metrics"
	"golang-news-globe/internal/news/repository"
	"golang-news-globe/pkg/logger"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func articles(titles ...string) []entity.NewsArticle {
	out := make([]entity.NewsArticle, len(titles))
	for i, t := range titles {
		out[i] = entity.NewsArticle{ID: "id-" + t, Title: t}
	}
	return out
}

func TestCacheFreshnessWindow(t *testing.T) {
	ctx := context.Background()
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New(NewMemoryStore(0), 12*time.Hour, metrics.NewNop(), logger.NewNop(), WithClock(clk.now))

	_, err := c.Set(ctx, "all", articles("a", "b"), "hash", []string{"gnews"})
	require.NoError(t, err)

	clk.t = clk.t.Add(12*time.Hour - time.Second)
	entry, ok := c.GetCached(ctx, "all")
	require.True(t, ok)
	assert.Len(t, entry.Articles, 2)

	clk.t = clk.t.Add(2 * time.Second)
	_, ok = c.GetCached(ctx, "all")
	assert.False(t, ok)

	stale, ok := c.GetEntry(ctx, "all")
	require.True(t, ok)
	assert.Equal(t, "hash", stale.ContentHash)

	age, ok := c.Age(ctx, "all")
	require.True(t, ok)
	assert.Equal(t, 12*time.Hour+time.Second, age)
}

func TestCacheTouchKeepsIDs(t *testing.T) {
	ctx := context.Background()
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New(NewMemoryStore(0), time.Hour, metrics.NewNop(), logger.NewNop(), WithClock(clk.now))

	first, _ := c.Set(ctx, "all", articles("a"), "h1", nil)
	clk.t = clk.t.Add(3 * time.Hour)
	touched, err := c.Touch(ctx, first)
	require.NoError(t, err)

	assert.Equal(t, "id-a", touched.Articles[0].ID)
	assert.Equal(t, clk.t, touched.FetchedAt)
	got, ok := c.GetCached(ctx, "all")
	require.True(t, ok)
	assert.Equal(t, "h1", got.ContentHash)
}

func TestCacheClearAndMiss(t *testing.T) {
	ctx := context.Background()
	c := New(NewMemoryStore(0), time.Hour, metrics.NewNop(), logger.NewNop())
	_, _ = c.Set(ctx, "all", articles("a"), "h", nil)
	require.NoError(t, c.Clear(ctx, "all"))

	_, ok := c.GetEntry(ctx, "all")
	assert.False(t, ok)
	_, ok = c.Age(ctx, "all")
	assert.False(t, ok)
}

func TestContentHash(t *testing.T) {
	h1 := ContentHash([]string{"b", "a", "c"})
	h2 := ContentHash([]string{"c", "b", "a"})
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 16)
	assert.NotEqual(t, h1, ContentHash([]string{"a", "b", "d"}))
}

type brokenStore struct{ loads, saves int }

func (b *brokenStore) Name() string { return "broken" }
func (b *brokenStore) Load(context.Context, string) (*Entry, error) {
	b.loads++
	return nil, errors.New("connection refused")
}
func (b *brokenStore) Save(context.Context, Entry) error {
	b.saves++
	return errors.New("connection refused")
}
func (b *brokenStore) Delete(context.Context, string) error { return nil }

func TestStoreErrorsAreMisses(t *testing.T) {
	c := New(&brokenStore{}, time.Hour, metrics.NewNop(), logger.NewNop())
	_, ok := c.GetCached(context.Background(), "all")
	assert.False(t, ok)

	entry, err := c.Set(context.Background(), "all", articles("a"), "h", nil)
	assert.Error(t, err)
	assert.Equal(t, "all", entry.Scope)
}

func TestTieredStoreReadsFirstHitAndBackfills(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore(0)
	broken := &brokenStore{}
	slow := NewMemoryStore(0)
	require.NoError(t, slow.Save(ctx, Entry{Scope: "all", ContentHash: "deep"}))

	tiered := NewTieredStore(logger.NewNop(), mem, broken, slow)
	entry, err := tiered.Load(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, "deep", entry.ContentHash)
	assert.Equal(t, 1, broken.loads)

	fromMem, err := mem.Load(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, "deep", fromMem.ContentHash)

	_, err = tiered.Load(ctx, "none")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestTieredStoreWritesAll(t *testing.T) {
	ctx := context.Background()
	a, b := NewMemoryStore(0), NewMemoryStore(0)
	broken := &brokenStore{}
	tiered := NewTieredStore(logger.NewNop(), a, broken, b)

	err := tiered.Save(ctx, Entry{Scope: "x", ContentHash: "h"})
	assert.ErrorContains(t, err, "broken")
	_, errA := a.Load(ctx, "x")
	_, errB := b.Load(ctx, "x")
	assert.NoError(t, errA)
	assert.NoError(t, errB)

	require.NoError(t, NewTieredStore(logger.NewNop(), a, b).Delete(ctx, "x"))
	_, errA = a.Load(ctx, "x")
	assert.ErrorIs(t, errA, ErrMiss)
}

type fakeRedis struct {
	redis.Cmdable
	data map[string][]byte
	ttl  map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	f.data[key] = value.([]byte)
	f.ttl[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	store := NewRedisStore(rdb, 48*time.Hour)

	_, err := store.Load(ctx, "all")
	assert.ErrorIs(t, err, ErrMiss)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, Entry{Scope: "all", BatchID: "b1", Articles: articles("a", "b"), FetchedAt: now, ContentHash: "h"}))
	assert.Equal(t, 48*time.Hour, rdb.ttl["news:cache:all"])

	entry, err := store.Load(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, now, entry.FetchedAt)
	require.Len(t, entry.Articles, 2)
	assert.Equal(t, "id-b", entry.Articles[1].ID)
	assert.Equal(t, 1, entry.Articles[1].Position)
	assert.Equal(t, "b1", entry.Articles[1].BatchID)

	require.NoError(t, store.Delete(ctx, "all"))
	_, err = store.Load(ctx, "all")
	assert.ErrorIs(t, err, ErrMiss)
}

type fakeArticleRepo struct {
	repository.NewsArticleRepository
	batches map[string][]entity.NewsArticle
	logs    []*entity.FetchLog
}

func (f *fakeArticleRepo) FindByBatch(_ context.Context, batchID string) ([]entity.NewsArticle, error) {
	return f.batches[batchID], nil
}

func (f *fakeArticleRepo) SaveBatch(_ context.Context, articles []entity.NewsArticle, log *entity.FetchLog) error {
	f.batches[log.BatchID] = articles
	f.logs = append(f.logs, log)
	return nil
}

type fakeLogRepo struct {
	repository.FetchLogRepository
	articles *fakeArticleRepo
	deleted  []string
}

func (f *fakeLogRepo) Latest(_ context.Context, scope string) (*entity.FetchLog, error) {
	for i := len(f.articles.logs) - 1; i >= 0; i-- {
		if f.articles.logs[i].Scope == scope {
			return f.articles.logs[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeLogRepo) DeleteScope(_ context.Context, scope string) error {
	f.deleted = append(f.deleted, scope)
	return nil
}

func TestPostgresStore(t *testing.T) {
	ctx := context.Background()
	arts := &fakeArticleRepo{batches: map[string][]entity.NewsArticle{}}
	logs := &fakeLogRepo{articles: arts}
	store := NewPostgresStore(arts, logs)
	n := 0
	store.newID = func() string { n++; return []string{"", "batch-1", "batch-2"}[n] }

	_, err := store.Load(ctx, "all")
	assert.ErrorIs(t, err, ErrMiss)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := articles("a", "b")
	require.NoError(t, store.Save(ctx, Entry{Scope: "all", Articles: in, FetchedAt: now, ContentHash: "h1", Providers: []string{"gnews"}}))
	assert.Empty(t, in[0].BatchID)

	require.NoError(t, store.Save(ctx, Entry{Scope: "all", Articles: in, FetchedAt: now.Add(time.Hour), ContentHash: "h1"}))

	entry, err := store.Load(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, "batch-2", entry.BatchID)
	assert.Equal(t, now.Add(time.Hour), entry.FetchedAt)
	require.Len(t, entry.Articles, 2)
	assert.Equal(t, "id-a", entry.Articles[0].ID)
	assert.Equal(t, 1, entry.Articles[1].Position)
	assert.Equal(t, "all", entry.Articles[1].Scope)

	require.NoError(t, store.Delete(ctx, "all"))
	assert.Equal(t, []string{"all"}, logs.deleted)
}
