package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-news-globe/internal/news/dto"
)

// Client calls the news API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API mounted at baseURL, e.g. http://localhost:8080/api/v1.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchNews(ctx context.Context, req dto.FetchNewsRequest) (*dto.FetchNewsResponse, error) {
	var resp dto.FetchNewsResponse
	if err := c.post(ctx, "/fetch-news", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckCredibility runs the credibility ensemble on a piece of text.
func (c *Client) CheckCredibility(ctx context.Context, title, text string) (*dto.CredibilityResult, error) {
	req := dto.AnalyzeArticleRequest{Kind: dto.KindCredibility, Title: title, Content: text}
	var resp dto.CredibilityResult
	if err := c.post(ctx, "/analyze-article", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("POST %s: %s (status %d)", path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
