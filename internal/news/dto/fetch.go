package dto

import (
	"time"

	"golang-news-globe/internal/entity"
)

// FetchNewsRequest is the body of POST /fetch-news.
type FetchNewsRequest struct {
	Query        string `json:"query,omitempty" query:"query"`
	Category     string `json:"category,omitempty" query:"category"`
	Max          int    `json:"max,omitempty" query:"max"`
	ForceRefresh bool   `json:"forceRefresh,omitempty" query:"forceRefresh"`
}

// FetchNewsResponse is the result of the fetch-news pipeline.
type FetchNewsResponse struct {
	TotalArticles int                  `json:"totalArticles"`
	Articles      []entity.NewsArticle `json:"articles"`
	Source        string               `json:"source"`
	Cached        bool                 `json:"cached"`
	Stale         bool                 `json:"stale"`
	Unchanged     bool                 `json:"unchanged"`
	FetchedAt     time.Time            `json:"fetchedAt"`
}

// MarkersResponse is the body of GET /markers.
type MarkersResponse struct {
	Markers   []entity.GlobeMarker `json:"markers"`
	FetchedAt time.Time            `json:"fetchedAt"`
}

// RegionalNewsResponse is the body of GET /regional-news.
type RegionalNewsResponse struct {
	Total int            `json:"total"`
	Items []RegionalItem `json:"items"`
}
