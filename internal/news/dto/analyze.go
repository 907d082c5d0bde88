package dto

import (
	"strings"

	"golang-news-globe/internal/entity"
)

// AnalyzeKind selects the operation of POST /analyze-article.
type AnalyzeKind string

const (
	KindCredibility  AnalyzeKind = "credibility"
	KindFullAnalysis AnalyzeKind = "full-analysis"
	KindSummary      AnalyzeKind = "summary"
)

// AnalyzeArticleRequest is a tagged request. Kind selects the variant; Type is the legacy alias.
type AnalyzeArticleRequest struct {
	Kind        AnalyzeKind    `json:"kind,omitempty"`
	Type        string         `json:"type,omitempty"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Content     string         `json:"content,omitempty"`
	Articles    []ArticleInput `json:"articles,omitempty"`
}

// ResolveKind returns Kind, falling back to the legacy Type field. A request with an articles
// array and no kind is a batch full-analysis; a bare single article is summarized.
func (r AnalyzeArticleRequest) ResolveKind() AnalyzeKind {
	if r.Kind != "" {
		return AnalyzeKind(strings.ToLower(strings.TrimSpace(string(r.Kind))))
	}
	if r.Type != "" {
		return AnalyzeKind(strings.ToLower(strings.TrimSpace(r.Type)))
	}
	if len(r.Articles) > 0 {
		return KindFullAnalysis
	}
	return KindSummary
}

// Single returns the request's top-level article.
func (r AnalyzeArticleRequest) Single() ArticleInput {
	return ArticleInput{Title: r.Title, Description: r.Description, Content: r.Content}
}

// Text returns content, then description, then title.
func (r AnalyzeArticleRequest) Text() string {
	return r.Single().ToRaw().BestText()
}

// FullAnalysisResponse holds one record per submitted article, in order.
type FullAnalysisResponse struct {
	Results []AnalysisRecord `json:"results"`
}

// SummaryResponse is the summary variant's result.
type SummaryResponse struct {
	Summary  string               `json:"summary"`
	Entities []entity.NamedEntity `json:"entities"`
}

// GenerativeJudgment is the credibility JSON returned by the generative model.
type GenerativeJudgment struct {
	CredibilityScore *float64 `json:"credibilityScore"`
	Verdict          string   `json:"verdict"`
	Explanation      string   `json:"explanation"`
	RedFlags         []string `json:"redFlags"`
}

// ClassifierResult is the binary detector's winning label and its confidence.
type ClassifierResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type GenerativeModelResult struct {
	Score   int    `json:"score"`
	Verdict string `json:"verdict"`
}

type ModelBreakdown struct {
	Generative GenerativeModelResult `json:"generative"`
	Classifier ClassifierResult      `json:"classifier"`
}

// CredibilityResult is the blended ensemble output. It is never persisted.
type CredibilityResult struct {
	CredibilityScore     int            `json:"credibilityScore"`
	Verdict              entity.Verdict `json:"verdict"`
	Badge                string         `json:"badge"`
	Explanation          string         `json:"explanation"`
	RedFlags             []string       `json:"redFlags"`
	ClassifierLabel      string         `json:"classifierLabel"`
	ClassifierConfidence float64        `json:"classifierConfidence"`
	Models               ModelBreakdown `json:"models"`
}
