package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/dto"
	newsservice "golang-news-globe/internal/news/service"
	"golang-news-globe/pkg/logger"
)

type fakeNews struct {
	newsservice.NewsService
	results map[string]*newsservice.RefreshResult
}

func (f *fakeNews) Refresh(_ context.Context, scope string) (*newsservice.RefreshResult, error) {
	res, ok := f.results[scope]
	if !ok {
		return nil, errors.New("upstream down")
	}
	return res, nil
}

type fakePublisher struct{ events []dto.CacheInvalidation }

func (f *fakePublisher) Publish(_ context.Context, e dto.CacheInvalidation) error {
	f.events = append(f.events, e)
	return nil
}

type fakeNotifier struct{ messages []string }

func (f *fakeNotifier) SendMessage(_ context.Context, text string) error {
	f.messages = append(f.messages, text)
	return nil
}

type fakePruner struct {
	n      int64
	err    error
	cutoff time.Time
}

func (f *fakePruner) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.n, f.err
}

func TestRefreshAllPublishesAndNotifies(t *testing.T) {
	news := &fakeNews{results: map[string]*newsservice.RefreshResult{
		"all": {Scope: "all", Changed: true, Response: &dto.FetchNewsResponse{
			TotalArticles: 2,
			Articles: []entity.NewsArticle{
				{Title: "First", Source: "AP", CredibilityScore: 80},
				{Title: "Second", Source: "BBC", CredibilityScore: 70},
			},
		}},
		"category:Sports": {Scope: "category:Sports", Skipped: true, HoursSince: 2},
	}}
	pub := &fakePublisher{}
	notifier := &fakeNotifier{}
	svc := NewRefresherService(news, Options{
		Scopes:       []string{"all", "category:Sports", "query:mars"},
		TopHeadlines: 1,
		Publisher:    pub,
		Notifier:     notifier,
	}, logger.NewNop())

	outcomes := svc.RefreshAll(context.Background())
	require.Len(t, outcomes, 3)
	assert.Error(t, outcomes[2].Err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "all", pub.events[0].Scope)
	assert.True(t, pub.events[0].Changed)
	assert.Equal(t, 2, pub.events[0].Articles)

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "First")
	assert.NotContains(t, notifier.messages[0], "Second")
}

func TestRefreshAllQuietWhenNothingChanged(t *testing.T) {
	news := &fakeNews{results: map[string]*newsservice.RefreshResult{
		"all": {Scope: "all", Response: &dto.FetchNewsResponse{TotalArticles: 3, Unchanged: true}},
	}}
	pub := &fakePublisher{}
	notifier := &fakeNotifier{}
	svc := NewRefresherService(news, Options{Scopes: []string{"all"}, Publisher: pub, Notifier: notifier}, logger.NewNop())

	svc.RefreshAll(context.Background())
	assert.Len(t, pub.events, 1)
	assert.False(t, pub.events[0].Changed)
	assert.Empty(t, notifier.messages)
}

func TestPrune(t *testing.T) {
	articles := &fakePruner{n: 40}
	logs := &fakePruner{err: errors.New("locked")}
	svc := NewRefresherService(&fakeNews{}, Options{
		Retention: 7 * 24 * time.Hour,
		Pruners:   []Pruner{articles, logs},
	}, logger.NewNop()).(*refresherService)
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	n, err := svc.Prune(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int64(40), n)
	assert.Equal(t, now.Add(-7*24*time.Hour), articles.cutoff)

	n, err = NewRefresherService(&fakeNews{}, Options{Pruners: []Pruner{articles}}, logger.NewNop()).Prune(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
