package service

import (
	"context"
	"fmt"
	"strings"

	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/logger"
)

// AnalyzeService answers on-demand analysis requests for client-supplied articles.
type AnalyzeService interface {
	Analyze(ctx context.Context, req dto.AnalyzeArticleRequest) (any, error)
	Credibility(ctx context.Context, title, text string) (*dto.CredibilityResult, error)
	FullAnalysis(ctx context.Context, articles []dto.ArticleInput) (*dto.FullAnalysisResponse, error)
	Summarize(ctx context.Context, title, text string) (*dto.SummaryResponse, error)
}

// NewAnalyzeService creates a new analyze service.
func NewAnalyzeService(analyzer Analyzer, checker CredibilityChecker, log *logger.Logger) AnalyzeService {
	return &analyzeService{
		analyzer: analyzer,
		checker:  checker,
		logger:   log.Named("analyze-service"),
	}
}

type analyzeService struct {
	analyzer Analyzer
	checker  CredibilityChecker
	logger   *logger.Logger
}

// Analyze dispatches on the request kind.
func (s *analyzeService) Analyze(ctx context.Context, req dto.AnalyzeArticleRequest) (any, error) {
	switch kind := req.ResolveKind(); kind {
	case dto.KindCredibility:
		return s.Credibility(ctx, req.Title, req.Text())
	case dto.KindFullAnalysis:
		articles := req.Articles
		if len(articles) == 0 && (req.Title != "" || req.Text() != "") {
			articles = []dto.ArticleInput{req.Single()}
		}
		return s.FullAnalysis(ctx, articles)
	case dto.KindSummary:
		return s.Summarize(ctx, req.Title, req.Text())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Credibility never fails once given text: unavailable models contribute their defaults.
func (s *analyzeService) Credibility(ctx context.Context, title, text string) (*dto.CredibilityResult, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(text) == "" {
		return nil, ErrNoArticles
	}
	result := s.checker.Check(ctx, title, text)
	s.logger.Debug("Credibility checked",
		logger.StringField("verdict", string(result.Verdict)),
		logger.IntField("score", result.CredibilityScore),
	)
	return &result, nil
}

// FullAnalysis returns one record per article, in submission order.
func (s *analyzeService) FullAnalysis(ctx context.Context, articles []dto.ArticleInput) (*dto.FullAnalysisResponse, error) {
	if len(articles) == 0 {
		return nil, ErrNoArticles
	}
	raw := make([]dto.RawArticle, len(articles))
	hints := make([]string, len(articles))
	for i, a := range articles {
		raw[i] = a.ToRaw()
		hints[i] = categoryFilter(a.CategoryHint)
	}
	records := s.analyzer.AnalyzeRecords(ctx, raw, hints...)
	return &dto.FullAnalysisResponse{Results: records}, nil
}

func (s *analyzeService) Summarize(ctx context.Context, title, text string) (*dto.SummaryResponse, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(text) == "" {
		return nil, ErrNoArticles
	}
	summary, err := s.analyzer.Summarize(ctx, title, text)
	if err != nil {
		s.logger.Error("Summary failed", logger.ErrorField(err))
		return nil, fmt.Errorf("summarize: %w", err)
	}
	return &summary, nil
}
