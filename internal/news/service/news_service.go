package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/cache"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/internal/news/metrics"
	"golang-news-globe/internal/news/provider"
	"golang-news-globe/internal/news/repository"
	"golang-news-globe/pkg/common"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/utils"

	gocache "github.com/patrickmn/go-cache"
)

// NewsService runs the fetch-news pipeline and serves its results.
type NewsService interface {
	FetchNews(ctx context.Context, req dto.FetchNewsRequest) (*dto.FetchNewsResponse, error)
	Refresh(ctx context.Context, scope string) (*RefreshResult, error)
	Article(ctx context.Context, id string) (*entity.NewsArticle, error)
	Markers(ctx context.Context) (*dto.MarkersResponse, error)
	RegionalDigest(ctx context.Context) (*dto.RegionalNewsResponse, error)
}

// RefreshResult describes one scheduled refresh of a scope.
type RefreshResult struct {
	Scope      string
	Skipped    bool
	Changed    bool
	HoursSince int
	Response   *dto.FetchNewsResponse
}

// Deps groups the collaborators of the news service. Enricher, Articles, FetchLogs, Regional
// and Publisher may be nil.
type Deps struct {
	Aggregator Aggregator
	Enricher   Enricher
	Analyzer   Analyzer
	Cache      *cache.Cache
	Articles   repository.NewsArticleRepository
	FetchLogs  repository.FetchLogRepository
	Regional   RegionalSource
	Publisher  repository.CacheEventPublisher
	Metrics    *metrics.Metrics
	Logger     *logger.Logger
}

// Options tunes the pipeline.
type Options struct {
	RequestTimeout time.Duration
	// WriteTimeout bounds cache writes and invalidation publishes, which outlive the request deadline.
	WriteTimeout time.Duration
	// ScopeTTL is how long a served scope stays searchable by Article.
	ScopeTTL time.Duration
	// MaxScopes caps the number of tracked scopes; further query scopes are served but not tracked.
	MaxScopes int
}

// NewNewsService creates a new news service.
func NewNewsService(deps Deps, opts Options) NewsService {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 50 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.ScopeTTL <= 0 {
		opts.ScopeTTL = 24 * time.Hour
	}
	if opts.MaxScopes <= 0 {
		opts.MaxScopes = 256
	}
	return &newsService{
		deps:   deps,
		opts:   opts,
		logger: deps.Logger.Named("news-service"),
		now:    utils.TimeNowUTC,
		scopes: gocache.New(opts.ScopeTTL, opts.ScopeTTL),
	}
}

type newsService struct {
	deps   Deps
	opts   Options
	logger *logger.Logger
	now    func() time.Time
	scopes *gocache.Cache
}

// track remembers scope for Article lookups. Known scopes are refreshed; new ones are dropped
// once MaxScopes are tracked.
func (s *newsService) track(scope string) {
	if scope == common.ScopeAll {
		return
	}
	if _, ok := s.scopes.Get(scope); !ok && s.scopes.ItemCount() >= s.opts.MaxScopes {
		return
	}
	s.scopes.SetDefault(scope, struct{}{})
}

// FetchNews serves a fresh cache entry when allowed, otherwise runs aggregation and analysis
// under the request deadline. It never fails because of upstream errors: an empty aggregation
// serves the previous entry flagged stale, or an empty result.
func (s *newsService) FetchNews(ctx context.Context, req dto.FetchNewsRequest) (*dto.FetchNewsResponse, error) {
	max := ClampMax(req.Max)
	scope := ScopeFor(req)
	s.track(scope)

	if !req.ForceRefresh {
		if entry, ok := s.deps.Cache.GetCached(ctx, scope); ok {
			s.deps.Metrics.FetchRequests.WithLabelValues("cached").Inc()
			resp := respond(entry, max)
			resp.Cached = true
			return resp, nil
		}
	}

	start := time.Now()
	defer s.deps.Metrics.ObservePipeline(start)

	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
	defer cancel()

	hint := categoryFilter(req.Category)
	result := s.deps.Aggregator.Aggregate(ctx, provider.Params{
		Query:    strings.TrimSpace(req.Query),
		Category: hint,
		// The entry is shared by every caller of the scope; max only trims the response.
		Max: common.MaxArticlesPerRequest,
	})
	for _, a := range result.Articles {
		s.deps.Metrics.ProviderArticles.WithLabelValues(a.Provider).Inc()
	}

	previous, hasPrevious := s.deps.Cache.GetEntry(ctx, scope)

	if len(result.Articles) == 0 {
		if hasPrevious {
			s.logger.Warn("No articles fetched, serving previous result", logger.StringField("scope", scope))
			s.deps.Metrics.FetchRequests.WithLabelValues("stale").Inc()
			resp := respond(previous, max)
			resp.Stale = true
			return resp, nil
		}
		s.logger.Warn("No articles fetched and nothing cached", logger.StringField("scope", scope))
		s.deps.Metrics.FetchRequests.WithLabelValues("empty").Inc()
		return &dto.FetchNewsResponse{
			Articles:  []entity.NewsArticle{},
			Source:    result.Label(),
			FetchedAt: s.now(),
		}, nil
	}

	titles := make([]string, len(result.Articles))
	for i, a := range result.Articles {
		titles[i] = a.Title
	}
	hash := cache.ContentHash(titles)

	if hasPrevious && previous.ContentHash == hash {
		wctx, wcancel := s.writeContext(parent)
		defer wcancel()
		touched, _ := s.deps.Cache.Touch(wctx, *previous)
		s.announce(wctx, touched, false)
		s.logger.Info("Headlines unchanged, keeping previous analysis",
			logger.StringField("scope", scope),
			logger.StringField("hash", hash),
		)
		s.deps.Metrics.FetchRequests.WithLabelValues("unchanged").Inc()
		resp := respond(&touched, max)
		resp.Unchanged = true
		return resp, nil
	}

	raw := result.Articles
	if s.deps.Enricher != nil {
		raw = s.deps.Enricher.Enrich(ctx, raw)
	}
	analyzed := s.deps.Analyzer.Analyze(ctx, raw, hint)

	wctx, wcancel := s.writeContext(parent)
	defer wcancel()
	entry, _ := s.deps.Cache.Set(wctx, scope, analyzed, hash, result.Providers)
	s.announce(wctx, entry, true)
	s.logger.Info("Fetched and analyzed articles",
		logger.StringField("scope", scope),
		logger.IntField("count", len(analyzed)),
		logger.StringField("providers", result.Label()),
		logger.DurationField("elapsed", time.Since(start)),
	)
	s.deps.Metrics.FetchRequests.WithLabelValues("fresh").Inc()
	return respond(&entry, max), nil
}

// writeContext detaches from the request deadline, which slow analysis may already have spent.
func (s *newsService) writeContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), s.opts.WriteTimeout)
}

// announce tells other replicas to drop their local copy of the rewritten scope.
func (s *newsService) announce(ctx context.Context, entry cache.Entry, changed bool) {
	if s.deps.Publisher == nil {
		return
	}
	err := s.deps.Publisher.Publish(ctx, dto.CacheInvalidation{
		Scope:     entry.Scope,
		Changed:   changed,
		Articles:  len(entry.Articles),
		FetchedAt: entry.FetchedAt,
	})
	if err != nil {
		s.logger.Warn("Failed to announce cache write", logger.StringField("scope", entry.Scope), logger.ErrorField(err))
	}
}

// Refresh forces a fetch of scope once the last fetch is at least one freshness window old.
func (s *newsService) Refresh(ctx context.Context, scope string) (*RefreshResult, error) {
	hours, seen, err := s.hoursSinceLastFetch(ctx, scope)
	if err != nil {
		s.logger.Warn("Could not read fetch history, refreshing anyway", logger.StringField("scope", scope), logger.ErrorField(err))
	}
	res := &RefreshResult{Scope: scope, HoursSince: hours}

	windowHours := int(s.deps.Cache.Window() / time.Hour)
	if err == nil && seen && hours < windowHours {
		res.Skipped = true
		s.deps.Metrics.Refreshes.WithLabelValues("skipped").Inc()
		return res, nil
	}

	resp, err := s.FetchNews(ctx, RequestForScope(scope))
	if err != nil {
		s.deps.Metrics.Refreshes.WithLabelValues("failed").Inc()
		return nil, err
	}
	res.Response = resp
	res.Changed = !resp.Unchanged && !resp.Stale && resp.TotalArticles > 0
	if res.Changed {
		s.deps.Metrics.Refreshes.WithLabelValues("changed").Inc()
	} else {
		s.deps.Metrics.Refreshes.WithLabelValues("unchanged").Inc()
	}
	return res, nil
}

func (s *newsService) hoursSinceLastFetch(ctx context.Context, scope string) (int, bool, error) {
	if s.deps.FetchLogs != nil {
		return s.deps.FetchLogs.HoursSinceLastFetch(ctx, scope, s.now())
	}
	age, ok := s.deps.Cache.Age(ctx, scope)
	if !ok {
		return 0, false, nil
	}
	return int(age / time.Hour), true, nil
}

// Article looks an article up in the database, then in the scopes this process has served.
func (s *newsService) Article(ctx context.Context, id string) (*entity.NewsArticle, error) {
	if s.deps.Articles != nil {
		article, err := s.deps.Articles.FindByID(ctx, id)
		if err == nil {
			return article, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Article lookup failed, searching cache", logger.StringField("id", id), logger.ErrorField(err))
		}
	}

	scopes := []string{common.ScopeAll}
	for scope := range s.scopes.Items() {
		scopes = append(scopes, scope)
	}
	for _, scope := range scopes {
		entry, ok := s.deps.Cache.GetEntry(ctx, scope)
		if !ok {
			continue
		}
		for i := range entry.Articles {
			if entry.Articles[i].ID == id {
				return &entry.Articles[i], nil
			}
		}
	}
	return nil, ErrArticleNotFound
}

// Markers groups the current global articles by coordinate.
func (s *newsService) Markers(ctx context.Context) (*dto.MarkersResponse, error) {
	resp, err := s.FetchNews(ctx, dto.FetchNewsRequest{})
	if err != nil {
		return nil, err
	}
	return &dto.MarkersResponse{
		Markers:   entity.BuildMarkers(resp.Articles),
		FetchedAt: resp.FetchedAt,
	}, nil
}

func (s *newsService) RegionalDigest(ctx context.Context) (*dto.RegionalNewsResponse, error) {
	if s.deps.Regional == nil {
		return nil, ErrNoData
	}
	items := s.deps.Regional.Digest(ctx)
	if len(items) == 0 {
		return nil, ErrNoData
	}
	return &dto.RegionalNewsResponse{Total: len(items), Items: items}, nil
}

func respond(entry *cache.Entry, max int) *dto.FetchNewsResponse {
	articles := entry.Articles
	if articles == nil {
		articles = []entity.NewsArticle{}
	}
	if len(articles) > max {
		articles = articles[:max]
	}
	source := strings.Join(entry.Providers, "+")
	if source == "" {
		source = "none"
	}
	return &dto.FetchNewsResponse{
		TotalArticles: len(articles),
		Articles:      articles,
		Source:        source,
		FetchedAt:     entry.FetchedAt,
	}
}
