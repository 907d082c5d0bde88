package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang-news-globe/internal/news/dto"
)

// Params narrows what an adapter fetches. Empty fields mean "no constraint".
type Params struct {
	Query    string
	Category string
	Country  string
	Max      int
}

// Relaxed drops the category and country hints, keeping the query.
func (p Params) Relaxed() Params {
	return Params{Query: p.Query, Max: p.Max}
}

// Adapter fetches articles from one upstream source.
// Fetch is best-effort: transport and parse failures are logged and yield an empty slice.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, params Params) []dto.RawArticle
}

const userAgent = "Mozilla/5.0 (compatible; news-globe/1.0)"

// maxBodyBytes caps how much of an upstream response we read.
const maxBodyBytes = 8 << 20

func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return body, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return body, nil
}
