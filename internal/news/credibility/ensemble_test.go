package credibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/internal/news/metrics"
	"golang-news-globe/internal/news/repository"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/retry"
)

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(context.Context, string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeClassifier struct {
	result dto.ClassifierResult
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(context.Context, string) (dto.ClassifierResult, error) {
	f.calls++
	return f.result, f.err
}

func testPolicy() retry.Policy {
	p := retry.InferencePolicy()
	p.Sleep = func(context.Context, time.Duration) error { return nil }
	return p
}

func score(v float64) *float64 { return &v }

func TestBlendCredible(t *testing.T) {
	res := Blend(dto.GenerativeJudgment{CredibilityScore: score(80), Verdict: "credible"},
		dto.ClassifierResult{Label: "Real", Confidence: 0.9})
	assert.Equal(t, 84, res.CredibilityScore)
	assert.Equal(t, entity.VerdictCredible, res.Verdict)
	assert.Equal(t, "VERIFIED", res.Badge)
}

func TestBlendSuspiciousClaim(t *testing.T) {
	res := Blend(dto.GenerativeJudgment{CredibilityScore: score(20), Verdict: "likely_fake", RedFlags: []string{"no sources"}},
		dto.ClassifierResult{Label: "Fake", Confidence: 0.95})
	assert.Equal(t, 50, res.CredibilityScore)
	assert.Equal(t, entity.VerdictSuspicious, res.Verdict)
	assert.Equal(t, []string{"no sources"}, res.RedFlags)
	assert.Equal(t, "likely_fake", res.Models.Generative.Verdict)
	assert.Equal(t, "Fake", res.ClassifierLabel)
}

func TestBlendDefaults(t *testing.T) {
	res := Blend(dto.GenerativeJudgment{}, dto.ClassifierResult{Label: "unknown", Confidence: 0.5})
	// 70*0.6 + 50*0.4 = 62
	assert.Equal(t, 62, res.CredibilityScore)
	assert.Equal(t, entity.VerdictSuspicious, res.Verdict)
	assert.Equal(t, "unknown", res.Models.Generative.Verdict)
	assert.Equal(t, 70, res.Models.Generative.Score)
	assert.Equal(t, "Ensemble analysis: generative model scored 70/100, classifier confidence 50% (unknown).", res.Explanation)
	assert.NotNil(t, res.RedFlags)
}

func TestCheckRunsBothModels(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n{\"credibilityScore\":80,\"verdict\":\"credible\",\"explanation\":\"Well sourced.\",\"redFlags\":[]}\n```"}
	cls := &fakeClassifier{result: dto.ClassifierResult{Label: "Real", Confidence: 0.9}}
	e := New(gen, cls, testPolicy(), metrics.NewNop(), logger.NewNop())

	res := e.Check(context.Background(), "Title", "Body")
	assert.Equal(t, 84, res.CredibilityScore)
	assert.Equal(t, entity.VerdictCredible, res.Verdict)
	assert.Equal(t, "Well sourced.", res.Explanation)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, cls.calls)
}

func TestCheckToleratesFailures(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota")}
	cls := &fakeClassifier{err: errors.New("503")}
	e := New(gen, cls, testPolicy(), metrics.NewNop(), logger.NewNop())

	res := e.Check(context.Background(), "Vaccines cause microchips", "Vaccines cause microchips")
	assert.Equal(t, 62, res.CredibilityScore)
	assert.Equal(t, "unknown", res.ClassifierLabel)
	assert.Equal(t, 0.5, res.ClassifierConfidence)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, 2, cls.calls)
}

func TestCheckDisabledClassifierIsNotRetried(t *testing.T) {
	gen := &fakeGenerator{reply: `{"credibilityScore":20,"verdict":"likely_fake"}`}
	cls := &fakeClassifier{err: repository.ErrClassifierDisabled}
	e := New(gen, cls, testPolicy(), metrics.NewNop(), logger.NewNop())

	res := e.Check(context.Background(), "t", "x")
	assert.Equal(t, 1, cls.calls)
	// 20*0.6 + 50*0.4 = 32
	assert.Equal(t, 32, res.CredibilityScore)
	assert.Equal(t, entity.VerdictLikelyFake, res.Verdict)
}

func TestVerdictBoundariesThroughBlend(t *testing.T) {
	// conf 1.0 contributes 40, so generative scores pick the blended total.
	cases := []struct {
		gen  float64
		conf float64
		want entity.Verdict
	}{
		{gen: 60, conf: 1.0, want: entity.VerdictCredible},      // 36+40 = 76
		{gen: 100, conf: 0.375, want: entity.VerdictSuspicious}, // 60+15 = 75
		{gen: 10, conf: 1.0, want: entity.VerdictSuspicious},    // 6+40 = 46
		{gen: 75, conf: 0, want: entity.VerdictLikelyFake},      // 45
	}
	for _, tc := range cases {
		res := Blend(dto.GenerativeJudgment{CredibilityScore: score(tc.gen)}, dto.ClassifierResult{Label: "Real", Confidence: tc.conf})
		assert.Equal(t, tc.want, res.Verdict, "gen=%v conf=%v score=%d", tc.gen, tc.conf, res.CredibilityScore)
	}
}
