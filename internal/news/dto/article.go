package dto

import (
	"time"

	"golang-news-globe/internal/entity"
)

// RawArticle is a provider article normalized before analysis. URL is the dedup key.
type RawArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Image       string    `json:"image,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      string    `json:"source"`
	Provider    string    `json:"provider,omitempty"`
	// Region is set by the regional digest to the state/region the item was matched to.
	Region string `json:"region,omitempty"`
}

// BestText returns the richest text available: content, then description, then title.
func (r RawArticle) BestText() string {
	switch {
	case r.Content != "":
		return r.Content
	case r.Description != "":
		return r.Description
	default:
		return r.Title
	}
}

// ArticleInput is an article submitted by a client for analysis.
type ArticleInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	// CategoryHint is used when the analysis cannot decide a category.
	CategoryHint string `json:"category,omitempty"`
}

// ToRaw converts client input to the pipeline's raw form.
func (a ArticleInput) ToRaw() RawArticle {
	return RawArticle{Title: a.Title, Description: a.Description, Content: a.Content}
}

// LocationRecord is the location object returned by the model.
type LocationRecord struct {
	City      string  `json:"city"`
	District  string  `json:"district,omitempty"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country"`
	Continent string  `json:"continent"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// AnalysisRecord is one element of the model's positional analysis array.
type AnalysisRecord struct {
	Sentiment        string               `json:"sentiment"`
	SentimentScore   float64              `json:"sentimentScore"`
	CredibilityScore float64              `json:"credibilityScore"`
	AISummary        string               `json:"aiSummary"`
	Entities         []entity.NamedEntity `json:"entities"`
	Category         string               `json:"category"`
	Location         LocationRecord       `json:"location"`
}

// RegionalItem is the first article matched to a region by the regional digest.
type RegionalItem struct {
	Region  string     `json:"region"`
	Article RawArticle `json:"article"`
}
