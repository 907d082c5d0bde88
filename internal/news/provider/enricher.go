package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"golang.org/x/sync/errgroup"

	"golang-news-globe/internal/news/config"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/utils"
)

// Enricher replaces truncated provider content with the article's extracted full text.
// It is best-effort: an article that cannot be fetched keeps its original content.
type Enricher struct {
	cfg    config.Enrich
	client *http.Client
	logger *logger.Logger
}

// NewEnricher creates a content enricher.
func NewEnricher(cfg config.Enrich, log *logger.Logger) *Enricher {
	return &Enricher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: log.Named("enricher"),
	}
}

// Enrich returns a copy of articles with short content replaced by extracted text. Order is preserved.
func (e *Enricher) Enrich(ctx context.Context, articles []dto.RawArticle) []dto.RawArticle {
	out := make([]dto.RawArticle, len(articles))
	copy(out, articles)
	if !e.cfg.Enabled {
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.cfg.MaxConcurrency, 1))
	for i := range out {
		if out[i].URL == "" || len([]rune(out[i].Content)) >= e.cfg.MinContentLen {
			continue
		}
		g.Go(func() error {
			text, err := e.extract(gctx, out[i].URL)
			if err != nil {
				e.logger.Debug("Failed to extract article text", logger.ErrorField(err), logger.StringField("url", out[i].URL))
				return nil
			}
			if len(text) > len(out[i].Content) {
				out[i].Content = text
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (e *Enricher) extract(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return "", err
	}
	return ExtractText(body)
}

// ExtractText runs readability over an HTML page and returns the main text.
func ExtractText(html []byte) (string, error) {
	doc, err := readability.NewDocument(string(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse article: %w", err)
	}
	dom, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc.Content())))
	if err != nil {
		return "", fmt.Errorf("failed to parse article content: %w", err)
	}
	return utils.SafeText(strings.TrimSpace(dom.Text())), nil
}
