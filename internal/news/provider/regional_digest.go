package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"golang-news-globe/internal/news/config"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/utils"
)

const digestCacheKey = "regional-digest"

// RegionalDigest builds one headline per region from Google News RSS searches.
// The assembled digest is memoized in process for the configured TTL.
type RegionalDigest struct {
	cfg      config.Regional
	groups   []config.RegionGroup
	keywords map[string][]string
	order    []string
	parser   *gofeed.Parser
	limiter  *rate.Limiter
	memo     *cache.Cache
	logger   *logger.Logger
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

// NewRegionalDigest creates the adapter. Empty groups or keywords fall back to the built-in tables.
func NewRegionalDigest(cfg config.Regional, log *logger.Logger) *RegionalDigest {
	groups := cfg.Groups
	if len(groups) == 0 {
		groups = DefaultRegionGroups
	}
	keywords := make(map[string][]string)
	src := cfg.Keywords
	if len(src) == 0 {
		src = DefaultRegionKeywords
	}
	for region, kws := range src {
		lowered := make([]string, 0, len(kws))
		for _, kw := range kws {
			lowered = append(lowered, strings.ToLower(kw))
		}
		keywords[strings.ToLower(region)] = lowered
	}

	var order []string
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, r := range g.Regions {
			if !seen[r] {
				seen[r] = true
				order = append(order, r)
			}
		}
	}

	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 5
	}

	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: cfg.RequestTimeout}

	return &RegionalDigest{
		cfg:      cfg,
		groups:   groups,
		keywords: keywords,
		order:    order,
		parser:   parser,
		limiter:  rate.NewLimiter(limit, batch),
		memo:     cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger:   log.Named("regional"),
		sleep:    sleepContext,
		now:      time.Now,
	}
}

func (r *RegionalDigest) Name() string { return "regional" }

// Fetch returns digest articles whose title, description or region contains the query.
func (r *RegionalDigest) Fetch(ctx context.Context, params Params) []dto.RawArticle {
	items := r.Digest(ctx)
	query := strings.ToLower(strings.TrimSpace(params.Query))

	var articles []dto.RawArticle
	for _, item := range items {
		if query != "" {
			haystack := strings.ToLower(item.Article.Title + " " + item.Article.Description + " " + item.Region)
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		articles = append(articles, item.Article)
		if params.Max > 0 && len(articles) >= params.Max {
			break
		}
	}
	return articles
}

// Digest returns one item per region, memoized for the configured TTL.
func (r *RegionalDigest) Digest(ctx context.Context) []dto.RegionalItem {
	if cached, ok := r.memo.Get(digestCacheKey); ok {
		return cached.([]dto.RegionalItem)
	}

	items := r.build(ctx)
	if len(items) > 0 {
		r.memo.Set(digestCacheKey, items, cache.DefaultExpiration)
	}
	return items
}

// Invalidate drops the memoized digest.
func (r *RegionalDigest) Invalidate() {
	r.memo.Delete(digestCacheKey)
}

func (r *RegionalDigest) build(ctx context.Context) []dto.RegionalItem {
	batchSize := r.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 5
	}

	perGroup := make([][]dto.RegionalItem, len(r.groups))
	for start := 0; start < len(r.groups); start += batchSize {
		if !utils.ShouldContinue(ctx, r.logger) {
			break
		}
		if start > 0 && r.cfg.BatchDelay > 0 {
			if err := r.sleep(ctx, r.cfg.BatchDelay); err != nil {
				break
			}
		}
		end := min(start+batchSize, len(r.groups))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			utils.GoSafe(func() {
				defer wg.Done()
				perGroup[i] = r.fetchGroup(ctx, r.groups[i])
			})
		}
		wg.Wait()
	}

	claimed := make(map[string]bool)
	var items []dto.RegionalItem
	for _, group := range perGroup {
		for _, item := range group {
			if claimed[item.Region] {
				continue
			}
			claimed[item.Region] = true
			items = append(items, item)
		}
	}
	r.logger.Info("Built regional digest", logger.IntField("regions", len(items)), logger.IntField("groups", len(r.groups)))
	return items
}

func (r *RegionalDigest) feedURL(query string) string {
	return fmt.Sprintf("%s?q=%s&%s", strings.TrimRight(r.cfg.BaseURL, "/"), url.QueryEscape(query), r.cfg.Locale)
}

func (r *RegionalDigest) fetchGroup(ctx context.Context, group config.RegionGroup) []dto.RegionalItem {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil
	}

	feedURL := r.feedURL(group.Query)
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.logger.Error("Failed to parse regional feed", logger.ErrorField(err), logger.StringField("query", group.Query))
		return nil
	}

	fallback := ""
	if len(group.Regions) > 0 {
		fallback = group.Regions[0]
	}

	now := r.now().UTC()
	var items []dto.RegionalItem
	for _, it := range feed.Items {
		title, publisher := splitPublisher(utils.SafeText(it.Title))
		description := stripHTML(it.Description)
		region := r.MatchRegion(title + " " + description)
		if region == "" {
			region = fallback
		}
		if region == "" {
			continue
		}

		published := now
		if it.PublishedParsed != nil {
			published = it.PublishedParsed.UTC()
		}
		image := ""
		if it.Image != nil {
			image = it.Image.URL
		}
		items = append(items, dto.RegionalItem{
			Region: region,
			Article: dto.RawArticle{
				Title:       title,
				Description: description,
				Content:     description,
				URL:         it.Link,
				Image:       image,
				PublishedAt: published,
				Source:      utils.FirstNonEmpty(publisher, "Google News"),
				Provider:    r.Name(),
				Region:      region,
			},
		})
	}
	return items
}

// MatchRegion returns the first region, in group order, with a keyword contained in text.
func (r *RegionalDigest) MatchRegion(text string) string {
	text = strings.ToLower(text)
	for _, region := range r.order {
		for _, kw := range r.keywords[strings.ToLower(region)] {
			if strings.Contains(text, kw) {
				return region
			}
		}
	}
	return ""
}

// splitPublisher separates the " - Publisher" suffix Google News appends to titles.
func splitPublisher(title string) (string, string) {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}

func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return utils.SafeText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return utils.SafeText(s)
	}
	return utils.SafeText(doc.Text())
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
