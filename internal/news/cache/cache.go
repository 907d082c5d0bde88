package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/metrics"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/utils"
)

// Cache serves scope-keyed entries and decides freshness against a window.
type Cache struct {
	store   Store
	window  time.Duration
	now     func() time.Time
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock injects the time source used for freshness checks and new entries.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a Cache over store. Entries older than window are never served as fresh.
func New(store Store, window time.Duration, m *metrics.Metrics, log *logger.Logger, opts ...Option) *Cache {
	c := &Cache{
		store:   store,
		window:  window,
		now:     utils.TimeNowUTC,
		metrics: m,
		logger:  log.Named("cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Window() time.Duration { return c.window }

// GetEntry returns the stored entry regardless of age. Store errors count as a miss.
func (c *Cache) GetEntry(ctx context.Context, scope string) (*Entry, bool) {
	entry, err := c.store.Load(ctx, scope)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logger.Warn("Cache read failed, treating as miss", logger.StringField("scope", scope), logger.ErrorField(err))
		}
		return nil, false
	}
	return entry, true
}

// GetCached returns the entry only while it is within the freshness window.
func (c *Cache) GetCached(ctx context.Context, scope string) (*Entry, bool) {
	entry, ok := c.GetEntry(ctx, scope)
	if !ok {
		c.metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	if !c.IsFresh(entry) {
		c.metrics.CacheLookups.WithLabelValues("expired").Inc()
		return nil, false
	}
	c.metrics.CacheLookups.WithLabelValues("hit").Inc()
	return entry, true
}

// IsFresh reports whether entry's age is within the window.
func (c *Cache) IsFresh(entry *Entry) bool {
	return entry != nil && c.now().Sub(entry.FetchedAt) <= c.window
}

// Set replaces the scope's entry with a new one stamped now. A store error is logged and
// returned, but the entry is still returned so callers can serve it.
func (c *Cache) Set(ctx context.Context, scope string, articles []entity.NewsArticle, hash string, providers []string) (Entry, error) {
	return c.SetAt(ctx, scope, articles, hash, providers, c.now())
}

// SetAt is Set with an explicit fetch time, for rewrites that must not restart the window.
func (c *Cache) SetAt(ctx context.Context, scope string, articles []entity.NewsArticle, hash string, providers []string, fetchedAt time.Time) (Entry, error) {
	entry := Entry{
		Scope:       scope,
		Articles:    articles,
		FetchedAt:   fetchedAt,
		ContentHash: hash,
		Providers:   providers,
	}
	if err := c.store.Save(ctx, entry); err != nil {
		c.logger.Error("Cache write failed", logger.StringField("scope", scope), logger.ErrorField(err))
		return entry, err
	}
	return entry, nil
}

// Touch re-stores an existing entry with a new timestamp, keeping its articles and ids.
func (c *Cache) Touch(ctx context.Context, entry Entry) (Entry, error) {
	return c.Set(ctx, entry.Scope, entry.Articles, entry.ContentHash, entry.Providers)
}

func (c *Cache) Clear(ctx context.Context, scope string) error {
	if err := c.store.Delete(ctx, scope); err != nil {
		c.logger.Error("Cache clear failed", logger.StringField("scope", scope), logger.ErrorField(err))
		return err
	}
	return nil
}

// Age returns how long ago the scope was fetched.
func (c *Cache) Age(ctx context.Context, scope string) (time.Duration, bool) {
	entry, ok := c.GetEntry(ctx, scope)
	if !ok {
		return 0, false
	}
	return c.now().Sub(entry.FetchedAt), true
}

// ContentHash fingerprints a result set by its headlines: sha256 over the sorted titles.
// Only headlines are hashed, so a story whose body changes under the same headline is not detected.
func ContentHash(titles []string) string {
	sorted := make([]string, len(titles))
	copy(sorted, titles)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "|")))
	return hex.EncodeToString(sum[:])[:16]
}

// Titles extracts article headlines.
func Titles(articles []entity.NewsArticle) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Title
	}
	return out
}
