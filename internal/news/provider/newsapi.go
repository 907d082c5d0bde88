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

const (
	newsAPIMaxPageSize = 100
	newsAPIRemoved     = "[Removed]"
)

type newsAPIResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

// NewsAPI is the alternate aggregation adapter.
type NewsAPI struct {
	cfg    config.NewsAPI
	client *http.Client
	logger *logger.Logger
	now    func() time.Time
}

// NewNewsAPI creates the NewsAPI adapter.
func NewNewsAPI(cfg config.NewsAPI, log *logger.Logger) *NewsAPI {
	return &NewsAPI{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: log.Named("newsapi"),
		now:    time.Now,
	}
}

func (n *NewsAPI) Name() string { return "newsapi" }

func (n *NewsAPI) buildURL(params Params) string {
	size := params.Max
	if size <= 0 || size > newsAPIMaxPageSize {
		size = newsAPIMaxPageSize
	}
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(size))

	endpoint := "/v2/top-headlines"
	if params.Query != "" {
		endpoint = "/v2/everything"
		q.Set("q", params.Query)
		q.Set("sortBy", "publishedAt")
		q.Set("language", "en")
	} else {
		country := utils.FirstNonEmpty(params.Country, n.cfg.Country, "us")
		q.Set("country", strings.ToLower(country))
		// NewsAPI shares GNews topics except "nation" and "world", which it lacks.
		if topic := GNewsCategory(params.Category); topic != "" && topic != "nation" && topic != "world" {
			q.Set("category", topic)
		}
	}
	return strings.TrimRight(n.cfg.BaseURL, "/") + endpoint + "?" + q.Encode()
}

// Fetch calls /v2/everything for queries, otherwise /v2/top-headlines. Placeholder "[Removed]" items are dropped.
func (n *NewsAPI) Fetch(ctx context.Context, params Params) []dto.RawArticle {
	if n.cfg.APIKey == "" {
		n.logger.Warn("NewsAPI key not configured, skipping")
		return nil
	}
	articles, err := n.fetch(ctx, params)
	if err != nil {
		n.logger.Error("Failed to fetch NewsAPI articles", logger.ErrorField(err), logger.StringField("query", params.Query))
		return nil
	}
	n.logger.Info("Fetched NewsAPI articles", logger.IntField("count", len(articles)))
	return articles
}

func (n *NewsAPI) fetch(ctx context.Context, params Params) ([]dto.RawArticle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.buildURL(params), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", n.cfg.APIKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call newsapi: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var payload newsAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode newsapi response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi error %s: %s", payload.Code, payload.Message)
	}

	now := n.now().UTC()
	articles := make([]dto.RawArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		if a.Title == newsAPIRemoved || a.URL == "" {
			continue
		}
		articles = append(articles, dto.RawArticle{
			Title:       utils.SafeText(a.Title),
			Description: utils.SafeText(a.Description),
			Content:     utils.SafeText(utils.FirstNonEmpty(a.Content, a.Description)),
			URL:         a.URL,
			Image:       a.URLToImage,
			PublishedAt: utils.ParseTimeOrNow(a.PublishedAt, now),
			Source:      utils.FirstNonEmpty(a.Source.Name, "Unknown"),
			Provider:    n.Name(),
		})
	}
	return articles, nil
}
