// Package mirror keeps a local copy of the global article set for CLI and embedded clients.
// Category filtering runs in process against the copy; the server is only called to load,
// refresh or search for something the copy does not hold.
package mirror

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/cache"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/internal/news/metrics"
	"golang-news-globe/pkg/common"
	"golang-news-globe/pkg/logger"
)

// DefaultWindow is how long a loaded set is served without asking the server.
const DefaultWindow = 30 * time.Minute

const scope = "__all__"

// ErrNoData is returned when nothing could be loaded and nothing was loaded before.
var ErrNoData = errors.New("no news available")

// Fetcher is the server-side fetch-news operation.
type Fetcher interface {
	FetchNews(ctx context.Context, req dto.FetchNewsRequest) (*dto.FetchNewsResponse, error)
}

// Snapshot is the mirror's view of the article set.
type Snapshot struct {
	Articles  []entity.NewsArticle
	FetchedAt time.Time
	FromCache bool
	Stale     bool
	Unchanged bool
}

// Mirror holds the article set behind a short-lived cache.
type Mirror struct {
	fetcher Fetcher
	cache   *cache.Cache
	logger  *logger.Logger
}

// New creates a mirror. opts are passed to the underlying cache.
func New(fetcher Fetcher, window time.Duration, log *logger.Logger, opts ...cache.Option) *Mirror {
	if window <= 0 {
		window = DefaultWindow
	}
	log = log.Named("mirror")
	return &Mirror{
		fetcher: fetcher,
		cache:   cache.New(cache.NewMemoryStore(0), window, metrics.NewNop(), log, opts...),
		logger:  log,
	}
}

// Load returns the article set, from the local copy while it is fresh unless force is set.
// A failed or empty load serves the previous copy flagged stale.
func (m *Mirror) Load(ctx context.Context, force bool) (*Snapshot, error) {
	if !force {
		if entry, ok := m.cache.GetCached(ctx, scope); ok {
			return &Snapshot{Articles: entry.Articles, FetchedAt: entry.FetchedAt, FromCache: true}, nil
		}
	}

	previous, hasPrevious := m.cache.GetEntry(ctx, scope)

	resp, err := m.fetcher.FetchNews(ctx, dto.FetchNewsRequest{Max: common.MaxArticlesPerRequest, ForceRefresh: force})
	if err != nil || len(resp.Articles) == 0 {
		if err != nil {
			m.logger.Warn("Load failed", logger.ErrorField(err))
		}
		if hasPrevious {
			return &Snapshot{Articles: previous.Articles, FetchedAt: previous.FetchedAt, Stale: true}, nil
		}
		return nil, ErrNoData
	}

	hash := cache.ContentHash(cache.Titles(resp.Articles))
	if hasPrevious && previous.ContentHash == hash {
		touched, _ := m.cache.Touch(ctx, *previous)
		return &Snapshot{Articles: touched.Articles, FetchedAt: touched.FetchedAt, Unchanged: true}, nil
	}

	entry, _ := m.cache.Set(ctx, scope, resp.Articles, hash, nil)
	return &Snapshot{Articles: entry.Articles, FetchedAt: entry.FetchedAt}, nil
}

// Refresh forces a load.
func (m *Mirror) Refresh(ctx context.Context) (*Snapshot, error) {
	return m.Load(ctx, true)
}

// Search matches term against city, country and headline in the local copy. Only when nothing
// matches does it query the server; new results are merged into the copy by headline.
func (m *Mirror) Search(ctx context.Context, term string) ([]entity.NewsArticle, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	var (
		local    []entity.NewsArticle
		loadedAt time.Time
	)
	if snap, err := m.Load(ctx, false); err == nil {
		local = snap.Articles
		loadedAt = snap.FetchedAt
		if found := Match(local, term); len(found) > 0 {
			return found, nil
		}
	} else if !errors.Is(err, ErrNoData) {
		return nil, err
	}

	resp, err := m.fetcher.FetchNews(ctx, dto.FetchNewsRequest{Query: term, Max: common.MaxArticlesPerRequest})
	if err != nil {
		return nil, err
	}
	if len(resp.Articles) == 0 {
		return []entity.NewsArticle{}, nil
	}

	merged := Merge(local, resp.Articles)
	switch {
	case len(merged) == len(local):
	case loadedAt.IsZero():
		m.cache.Set(ctx, scope, merged, cache.ContentHash(cache.Titles(merged)), nil)
	default:
		// Search hits ride along with the base set and expire with it.
		m.cache.SetAt(ctx, scope, merged, cache.ContentHash(cache.Titles(merged)), nil, loadedAt)
	}
	return resp.Articles, nil
}

// Filter returns the articles in category. An empty category or "All" returns every article.
func Filter(articles []entity.NewsArticle, category string) []entity.NewsArticle {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, "all") {
		return articles
	}
	out := make([]entity.NewsArticle, 0, len(articles))
	for _, a := range articles {
		if strings.EqualFold(string(a.Category), category) {
			out = append(out, a)
		}
	}
	return out
}

// Match returns the articles whose city, country or headline contains term.
func Match(articles []entity.NewsArticle, term string) []entity.NewsArticle {
	var out []entity.NewsArticle
	for _, a := range articles {
		if containsFold(a.Location.City, term) || containsFold(a.Location.Country, term) || containsFold(a.Title, term) {
			out = append(out, a)
		}
	}
	return out
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// Merge appends the incoming articles whose headline is not already present.
func Merge(existing, incoming []entity.NewsArticle) []entity.NewsArticle {
	seen := make(map[string]struct{}, len(existing))
	out := make([]entity.NewsArticle, 0, len(existing)+len(incoming))
	for _, a := range existing {
		seen[a.Title] = struct{}{}
		out = append(out, a)
	}
	for _, a := range incoming {
		if _, ok := seen[a.Title]; ok {
			continue
		}
		seen[a.Title] = struct{}{}
		out = append(out, a)
	}
	return out
}

// CategoryCounts counts articles per category.
func CategoryCounts(articles []entity.NewsArticle) map[entity.Category]int {
	counts := make(map[entity.Category]int)
	for _, a := range articles {
		counts[a.Category]++
	}
	return counts
}
