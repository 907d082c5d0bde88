package service

import (
	"context"
	"errors"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/aggregator"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/internal/news/provider"
)

var (
	// ErrUnknownKind is returned for an analyze request whose kind is not recognized.
	ErrUnknownKind = errors.New("unknown analysis kind")
	// ErrNoArticles is returned when a request carries nothing to analyze.
	ErrNoArticles = errors.New("no articles to analyze")
	// ErrNoData is returned when neither a fresh fetch nor a previous result is available.
	ErrNoData = errors.New("no data available")
	// ErrArticleNotFound is returned by article lookups.
	ErrArticleNotFound = errors.New("article not found")
)

// Aggregator fans out to the provider adapters.
type Aggregator interface {
	Aggregate(ctx context.Context, params provider.Params) aggregator.Result
}

// Enricher fills in truncated article content.
type Enricher interface {
	Enrich(ctx context.Context, articles []dto.RawArticle) []dto.RawArticle
}

// Analyzer runs the generative analysis.
type Analyzer interface {
	Analyze(ctx context.Context, articles []dto.RawArticle, hints ...string) []entity.NewsArticle
	AnalyzeRecords(ctx context.Context, articles []dto.RawArticle, hints ...string) []dto.AnalysisRecord
	Summarize(ctx context.Context, title, text string) (dto.SummaryResponse, error)
}

// CredibilityChecker runs the credibility ensemble.
type CredibilityChecker interface {
	Check(ctx context.Context, title, text string) dto.CredibilityResult
}

// RegionalSource produces the per-region digest.
type RegionalSource interface {
	Digest(ctx context.Context) []dto.RegionalItem
}
