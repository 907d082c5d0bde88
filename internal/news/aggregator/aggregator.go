package aggregator

import (
	"context"
	"strings"
	"sync"

	"golang-news-globe/internal/news/dto"
	"golang-news-globe/internal/news/provider"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/utils"
)

// Result is the merged output of one aggregation.
type Result struct {
	Articles  []dto.RawArticle
	Providers []string
}

// Label renders the contributing providers, e.g. "gnews+newsapi".
func (r Result) Label() string {
	if len(r.Providers) == 0 {
		return "none"
	}
	return strings.Join(r.Providers, "+")
}

// Aggregator fans a request out to every adapter and merges the results.
// The first adapter is the primary; an optional fallback is tried when the primary comes back empty.
type Aggregator struct {
	adapters []provider.Adapter
	fallback provider.Adapter
	logger   *logger.Logger
}

// New creates an aggregator. Adapters are listed in priority order.
func New(log *logger.Logger, fallback provider.Adapter, adapters ...provider.Adapter) *Aggregator {
	return &Aggregator{
		adapters: adapters,
		fallback: fallback,
		logger:   log.Named("aggregator"),
	}
}

// Aggregate calls every adapter concurrently, concatenates results in priority order,
// dedupes by URL keeping the first occurrence and truncates to params.Max.
func (a *Aggregator) Aggregate(ctx context.Context, params provider.Params) Result {
	slots := make([][]dto.RawArticle, len(a.adapters))

	var wg sync.WaitGroup
	for i, adapter := range a.adapters {
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			slots[i] = adapter.Fetch(ctx, params)
		})
	}
	wg.Wait()

	var providers []string
	for i, adapter := range a.adapters {
		if len(slots[i]) > 0 {
			providers = append(providers, adapter.Name())
		}
	}

	if len(a.adapters) > 0 && len(slots[0]) == 0 && a.fallback != nil {
		a.logger.Warn("Primary provider returned no articles, trying fallback",
			logger.StringField("primary", a.adapters[0].Name()),
			logger.StringField("fallback", a.fallback.Name()),
		)
		if extra := a.fallback.Fetch(ctx, params.Relaxed()); len(extra) > 0 {
			slots = append(slots, extra)
			providers = append(providers, "fallback:"+a.fallback.Name())
		}
	}

	articles := Dedupe(slots...)
	if params.Max > 0 && len(articles) > params.Max {
		articles = articles[:params.Max]
	}

	a.logger.Info("Aggregated articles",
		logger.IntField("count", len(articles)),
		logger.StringField("providers", strings.Join(providers, "+")),
	)
	return Result{Articles: articles, Providers: providers}
}

// Dedupe concatenates the lists in order and keeps the first article per URL. Articles without a URL are dropped.
func Dedupe(lists ...[]dto.RawArticle) []dto.RawArticle {
	seen := make(map[string]struct{})
	var out []dto.RawArticle
	for _, list := range lists {
		for _, article := range list {
			key := strings.TrimSpace(article.URL)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, article)
		}
	}
	return out
}
