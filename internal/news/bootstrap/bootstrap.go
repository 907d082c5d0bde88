// Package bootstrap assembles the news pipeline from configuration. Both the API and the
// refresher service build their pipeline here so they share cache layout and analysis settings.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/aggregator"
	"golang-news-globe/internal/news/analysis"
	"golang-news-globe/internal/news/cache"
	"golang-news-globe/internal/news/config"
	"golang-news-globe/internal/news/credibility"
	"golang-news-globe/internal/news/metrics"
	"golang-news-globe/internal/news/provider"
	"golang-news-globe/internal/news/repository"
	"golang-news-globe/internal/news/service"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/retry"
)

// Infra carries the shared connections. DB and Redis are nil when disabled.
type Infra struct {
	DB         *gorm.DB
	Redis      redis.Cmdable
	Registerer prometheus.Registerer
	// Publish makes the news service announce its own cache writes on the invalidation stream.
	Publish bool
}

// Pipeline is the assembled set of components.
type Pipeline struct {
	Metrics     *metrics.Metrics
	Generator   repository.TextGenerator
	Cache       *cache.Cache
	MemoryStore *cache.MemoryStore
	Regional    *provider.RegionalDigest
	Articles    repository.NewsArticleRepository
	FetchLogs   repository.FetchLogRepository
	Publisher   repository.CacheEventPublisher
	News        service.NewsService
	Analyze     service.AnalyzeService
}

// NewGenerator selects the generative backend named by cfg.AI.Provider.
func NewGenerator(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.TextGenerator, error) {
	switch strings.ToLower(cfg.AI.Provider) {
	case "gemini":
		client, err := repository.NewGenAIClient(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return repository.NewGeminiGenerator(cfg.Gemini, client, log), nil
	case "openai":
		return repository.NewOpenAIGenerator(cfg.OpenAI, log), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.AI.Provider)
	}
}

// Build wires every component of the pipeline.
func Build(ctx context.Context, cfg *config.Config, infra Infra, log *logger.Logger) (*Pipeline, error) {
	reg := infra.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := metrics.New(reg)

	generator, err := NewGenerator(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{Metrics: m, Generator: generator}

	adapters, fallback := buildAdapters(cfg, p, log)
	agg := aggregator.New(log, fallback, adapters...)

	var enricher service.Enricher
	if cfg.Enrich.Enabled {
		enricher = provider.NewEnricher(cfg.Enrich, log)
	}

	batchPolicy := retry.AIBatchPolicy()
	batchPolicy.MaxAttempts = cfg.News.RetryMaxAttempts
	batchPolicy.BaseDelay = cfg.News.RetryBaseDelay

	defaultCategory, ok := entity.ParseCategory(cfg.News.DefaultCategory)
	if !ok {
		defaultCategory = entity.CategoryTechnology
	}
	analyzer := analysis.New(generator, m, log,
		analysis.WithBatchSize(cfg.News.BatchSize),
		analysis.WithConcurrency(cfg.News.BatchConcurrency),
		analysis.WithPolicy(batchPolicy),
		analysis.WithDefaultCategory(defaultCategory),
	)
	ensemble := credibility.New(generator, repository.NewHFClassifier(cfg.Classifier, log), retry.InferencePolicy(), m, log)

	p.MemoryStore = cache.NewMemoryStore(cfg.News.RetentionPeriod)
	tiers := []cache.Store{p.MemoryStore}
	if infra.Redis != nil {
		tiers = append(tiers, cache.NewRedisStore(infra.Redis, cfg.News.RetentionPeriod))
		p.Publisher = repository.NewCacheEventPublisher(infra.Redis, cfg.Redis.StreamMaxLen)
	}
	if infra.DB != nil {
		p.Articles = repository.NewNewsArticleRepository(infra.DB)
		p.FetchLogs = repository.NewFetchLogRepository(infra.DB)
		tiers = append(tiers, cache.NewPostgresStore(p.Articles, p.FetchLogs))
	}
	p.Cache = cache.New(cache.NewTieredStore(log, tiers...), cfg.News.FreshnessWindow, m, log)

	deps := service.Deps{
		Aggregator: agg,
		Enricher:   enricher,
		Analyzer:   analyzer,
		Cache:      p.Cache,
		Articles:   p.Articles,
		FetchLogs:  p.FetchLogs,
		Metrics:    m,
		Logger:     log,
	}
	if p.Regional != nil {
		deps.Regional = p.Regional
	}
	if infra.Publish && cfg.News.InvalidateOnWrite {
		deps.Publisher = p.Publisher
	}
	p.News = service.NewNewsService(deps, service.Options{
		RequestTimeout: cfg.News.RequestTimeout,
		ScopeTTL:       cfg.News.RetentionPeriod,
	})
	p.Analyze = service.NewAnalyzeService(analyzer, ensemble, log)

	log.Info("News pipeline ready",
		logger.StringField("generator", generator.Name()),
		logger.IntField("adapters", len(adapters)),
		logger.IntField("cache_tiers", len(tiers)),
	)
	return p, nil
}

// buildAdapters returns the adapters in priority order and the fallback named by cfg.GNews.Fallback.
func buildAdapters(cfg *config.Config, p *Pipeline, log *logger.Logger) ([]provider.Adapter, provider.Adapter) {
	adapters := []provider.Adapter{provider.NewGNews(cfg.GNews, log)}

	var newsAPI provider.Adapter
	if cfg.NewsAPI.Enabled || strings.EqualFold(cfg.GNews.Fallback, "newsapi") {
		newsAPI = provider.NewNewsAPI(cfg.NewsAPI, log)
	}
	if cfg.NewsAPI.Enabled {
		adapters = append(adapters, newsAPI)
	}

	if cfg.Regional.Enabled {
		p.Regional = provider.NewRegionalDigest(cfg.Regional, log)
		if cfg.Regional.IncludeInFetch {
			adapters = append(adapters, p.Regional)
		}
	}

	var fallback provider.Adapter
	switch strings.ToLower(cfg.GNews.Fallback) {
	case "newsapi":
		if !cfg.NewsAPI.Enabled {
			fallback = newsAPI
		}
	case "regional":
		if p.Regional != nil && !cfg.Regional.IncludeInFetch {
			fallback = p.Regional
		}
	}
	return adapters, fallback
}
