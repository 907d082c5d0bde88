package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang-news-globe/internal/news/config"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/utils"
)

const gnewsMaxPerRequest = 25

// gnewsCategories maps globe categories to GNews topics. Unknown categories fall back to "general".
var gnewsCategories = map[string]string{
	"Technology":    "technology",
	"Science":       "science",
	"Health":        "health",
	"Business":      "business",
	"Entertainment": "entertainment",
	"Sports":        "sports",
	"Politics":      "nation",
	"Environment":   "world",
}

// GNewsCategory returns the GNews topic for a category, or "" when no filter applies.
func GNewsCategory(category string) string {
	if category == "" || strings.EqualFold(category, "all") {
		return ""
	}
	for k, v := range gnewsCategories {
		if strings.EqualFold(k, category) {
			return v
		}
	}
	return "general"
}

type gnewsResponse struct {
	TotalArticles int `json:"totalArticles"`
	Articles      []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		Image       string `json:"image"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"source"`
	} `json:"articles"`
}

// GNews is the primary headline search adapter.
type GNews struct {
	cfg    config.GNews
	client *http.Client
	logger *logger.Logger
	now    func() time.Time
}

// NewGNews creates the GNews adapter.
func NewGNews(cfg config.GNews, log *logger.Logger) *GNews {
	return &GNews{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: log.Named("gnews"),
		now:    time.Now,
	}
}

func (g *GNews) Name() string { return "gnews" }

func (g *GNews) buildURL(params Params) string {
	max := params.Max
	if max <= 0 || max > gnewsMaxPerRequest {
		max = gnewsMaxPerRequest
	}

	q := url.Values{}
	endpoint := "/top-headlines"
	if params.Query != "" {
		endpoint = "/search"
		q.Set("q", params.Query)
	}
	q.Set("lang", g.cfg.Lang)
	q.Set("max", strconv.Itoa(max))
	if topic := GNewsCategory(params.Category); topic != "" {
		q.Set("category", topic)
	}
	country := utils.FirstNonEmpty(params.Country, g.cfg.Country)
	if country != "" {
		q.Set("country", strings.ToLower(country))
	}
	q.Set("apikey", g.cfg.APIKey)
	return strings.TrimRight(g.cfg.BaseURL, "/") + endpoint + "?" + q.Encode()
}

// Fetch calls /search when a query is given, otherwise /top-headlines.
func (g *GNews) Fetch(ctx context.Context, params Params) []dto.RawArticle {
	if g.cfg.APIKey == "" {
		g.logger.Warn("GNews API key not configured, skipping")
		return nil
	}

	articles, err := g.fetch(ctx, params)
	if err != nil {
		g.logger.Error("Failed to fetch GNews articles",
			logger.ErrorField(err),
			logger.StringField("query", params.Query),
			logger.StringField("category", params.Category),
		)
		return nil
	}
	g.logger.Info("Fetched GNews articles", logger.IntField("count", len(articles)))
	return articles
}

func (g *GNews) fetch(ctx context.Context, params Params) ([]dto.RawArticle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.buildURL(params), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call gnews: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var payload gnewsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode gnews response: %w", err)
	}

	now := g.now().UTC()
	articles := make([]dto.RawArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, dto.RawArticle{
			Title:       utils.SafeText(a.Title),
			Description: utils.SafeText(a.Description),
			Content:     utils.SafeText(utils.FirstNonEmpty(a.Content, a.Description)),
			URL:         a.URL,
			Image:       a.Image,
			PublishedAt: utils.ParseTimeOrNow(a.PublishedAt, now),
			Source:      utils.FirstNonEmpty(a.Source.Name, "Unknown"),
			Provider:    g.Name(),
		})
	}
	return articles, nil
}
