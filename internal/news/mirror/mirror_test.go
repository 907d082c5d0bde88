package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/cache"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/logger"
)

type fakeFetcher struct {
	articles []entity.NewsArticle
	byQuery  map[string][]entity.NewsArticle
	err      error
	calls    []dto.FetchNewsRequest
}

func (f *fakeFetcher) FetchNews(_ context.Context, req dto.FetchNewsRequest) (*dto.FetchNewsResponse, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	if req.Query != "" {
		return &dto.FetchNewsResponse{Articles: f.byQuery[req.Query]}, nil
	}
	return &dto.FetchNewsResponse{Articles: f.articles}, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func article(id, title, city, country string, cat entity.Category) entity.NewsArticle {
	return entity.NewsArticle{ID: id, Title: title, Category: cat, Location: entity.Location{City: city, Country: country}}
}

func newMirror(f *fakeFetcher) (*Mirror, *clock) {
	clk := &clock{t: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)}
	return New(f, DefaultWindow, logger.NewNop(), cache.WithClock(clk.now)), clk
}

func TestLoadUsesCacheWithinWindow(t *testing.T) {
	f := &fakeFetcher{articles: []entity.NewsArticle{article("1", "Rates cut", "London", "UK", entity.CategoryBusiness)}}
	m, clk := newMirror(f)
	ctx := context.Background()

	snap, err := m.Load(ctx, false)
	require.NoError(t, err)
	assert.False(t, snap.FromCache)

	clk.t = clk.t.Add(29 * time.Minute)
	snap, err = m.Load(ctx, false)
	require.NoError(t, err)
	assert.True(t, snap.FromCache)
	assert.Len(t, f.calls, 1)

	clk.t = clk.t.Add(2 * time.Minute)
	_, err = m.Load(ctx, false)
	require.NoError(t, err)
	assert.Len(t, f.calls, 2)
}

func TestRefreshDetectsNoChange(t *testing.T) {
	f := &fakeFetcher{articles: []entity.NewsArticle{article("1", "A", "", "", "")}}
	m, _ := newMirror(f)
	ctx := context.Background()

	_, err := m.Load(ctx, false)
	require.NoError(t, err)

	f.articles = []entity.NewsArticle{article("2", "A", "", "", "")}
	snap, err := m.Refresh(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Unchanged)
	assert.Equal(t, "1", snap.Articles[0].ID)
	assert.True(t, f.calls[1].ForceRefresh)
}

func TestLoadFailureServesStale(t *testing.T) {
	f := &fakeFetcher{err: errors.New("offline")}
	m, _ := newMirror(f)
	ctx := context.Background()

	_, err := m.Load(ctx, false)
	assert.ErrorIs(t, err, ErrNoData)

	f.err = nil
	f.articles = []entity.NewsArticle{article("1", "A", "", "", "")}
	_, err = m.Load(ctx, false)
	require.NoError(t, err)

	f.err = errors.New("offline")
	snap, err := m.Refresh(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Stale)
	assert.Len(t, snap.Articles, 1)
}

func TestSearchLocalThenRemote(t *testing.T) {
	f := &fakeFetcher{
		articles: []entity.NewsArticle{article("1", "Floods in Chennai", "Chennai", "India", entity.CategoryEnvironment)},
		byQuery: map[string][]entity.NewsArticle{
			"mars": {article("9", "Rover lands on Mars", "", "", entity.CategoryScience)},
		},
	}
	m, _ := newMirror(f)
	ctx := context.Background()

	found, err := m.Search(ctx, "india")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Len(t, f.calls, 1)

	found, err = m.Search(ctx, "mars")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "mars", f.calls[1].Query)

	snap, err := m.Load(ctx, false)
	require.NoError(t, err)
	assert.True(t, snap.FromCache)
	assert.Len(t, snap.Articles, 2)

	found, err = m.Search(ctx, "rover")
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Len(t, f.calls, 2)
}

func TestSearchMergeKeepsBaseWindow(t *testing.T) {
	f := &fakeFetcher{
		articles: []entity.NewsArticle{article("1", "Floods in Chennai", "Chennai", "India", entity.CategoryEnvironment)},
		byQuery: map[string][]entity.NewsArticle{
			"mars": {article("9", "Rover lands on Mars", "", "", entity.CategoryScience)},
		},
	}
	m, clk := newMirror(f)
	ctx := context.Background()

	first, err := m.Load(ctx, false)
	require.NoError(t, err)

	clk.t = clk.t.Add(20 * time.Minute)
	_, err = m.Search(ctx, "mars")
	require.NoError(t, err)

	snap, err := m.Load(ctx, false)
	require.NoError(t, err)
	assert.True(t, snap.FromCache)
	assert.Len(t, snap.Articles, 2)
	assert.Equal(t, first.FetchedAt, snap.FetchedAt)

	clk.t = clk.t.Add(11 * time.Minute)
	snap, err = m.Load(ctx, false)
	require.NoError(t, err)
	assert.False(t, snap.FromCache)
	assert.Len(t, f.calls, 3)
}

func TestFilterAndCounts(t *testing.T) {
	articles := []entity.NewsArticle{
		article("1", "a", "", "", entity.CategorySports),
		article("2", "b", "", "", entity.CategoryHealth),
		article("3", "c", "", "", entity.CategorySports),
	}
	assert.Len(t, Filter(articles, "All"), 3)
	assert.Len(t, Filter(articles, ""), 3)
	assert.Len(t, Filter(articles, "sports"), 2)
	assert.Empty(t, Filter(articles, "Politics"))

	counts := CategoryCounts(articles)
	assert.Equal(t, 2, counts[entity.CategorySports])
	assert.Equal(t, 1, counts[entity.CategoryHealth])
}

func TestMergeByHeadline(t *testing.T) {
	merged := Merge(
		[]entity.NewsArticle{article("1", "A", "", "", "")},
		[]entity.NewsArticle{article("2", "A", "", "", ""), article("3", "B", "", "", "")},
	)
	require.Len(t, merged, 2)
	assert.Equal(t, "1", merged[0].ID)
	assert.Equal(t, "3", merged[1].ID)
}

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/fetch-news":
			var req dto.FetchNewsRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(dto.FetchNewsResponse{
				TotalArticles: 1,
				Articles:      []entity.NewsArticle{{ID: "x", Title: req.Query}},
			})
		case "/api/v1/analyze-article":
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "no articles to analyze"})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/v1/", time.Second)
	resp, err := c.FetchNews(context.Background(), dto.FetchNewsRequest{Query: "volcano"})
	require.NoError(t, err)
	assert.Equal(t, "volcano", resp.Articles[0].Title)

	_, err = c.CheckCredibility(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no articles to analyze")
}
