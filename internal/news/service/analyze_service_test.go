package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/pkg/logger"
)

type fakeChecker struct{ calls int }

func (f *fakeChecker) Check(_ context.Context, _, _ string) dto.CredibilityResult {
	f.calls++
	return dto.CredibilityResult{CredibilityScore: 80, Verdict: entity.VerdictCredible}
}

func TestAnalyzeDispatch(t *testing.T) {
	an := &fakeAnalyzer{}
	checker := &fakeChecker{}
	svc := NewAnalyzeService(an, checker, logger.NewNop())
	ctx := context.Background()

	out, err := svc.Analyze(ctx, dto.AnalyzeArticleRequest{Kind: dto.KindCredibility, Title: "t", Content: "body"})
	require.NoError(t, err)
	cred, ok := out.(*dto.CredibilityResult)
	require.True(t, ok)
	assert.Equal(t, 80, cred.CredibilityScore)
	assert.Equal(t, 1, checker.calls)

	out, err = svc.Analyze(ctx, dto.AnalyzeArticleRequest{Articles: []dto.ArticleInput{
		{Title: "one", CategoryHint: "health"},
		{Title: "two"},
	}})
	require.NoError(t, err)
	full, ok := out.(*dto.FullAnalysisResponse)
	require.True(t, ok)
	require.Len(t, full.Results, 2)
	assert.Equal(t, "one", full.Results[0].AISummary)
	assert.Equal(t, []string{"Health", ""}, an.hints)

	out, err = svc.Analyze(ctx, dto.AnalyzeArticleRequest{Title: "rates"})
	require.NoError(t, err)
	assert.Equal(t, "about rates", out.(*dto.SummaryResponse).Summary)
}

func TestAnalyzeErrors(t *testing.T) {
	svc := NewAnalyzeService(&fakeAnalyzer{}, &fakeChecker{}, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Analyze(ctx, dto.AnalyzeArticleRequest{Kind: "horoscope", Title: "x"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = svc.Analyze(ctx, dto.AnalyzeArticleRequest{Kind: dto.KindFullAnalysis})
	assert.ErrorIs(t, err, ErrNoArticles)

	_, err = svc.Analyze(ctx, dto.AnalyzeArticleRequest{Kind: dto.KindCredibility})
	assert.ErrorIs(t, err, ErrNoArticles)

	_, err = svc.Summarize(ctx, "fail", "text")
	assert.Error(t, err)
}
