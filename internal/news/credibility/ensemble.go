package credibility

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/internal/news/metrics"
	"golang-news-globe/internal/news/repository"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/retry"
	"golang-news-globe/pkg/utils"
)

const (
	generativeWeight = 0.6
	classifierWeight = 0.4

	defaultGenerativeScore = 70
	defaultClassifierConf  = 0.5
	unknownLabel           = "unknown"
)

// Ensemble blends a generative credibility judgment with a binary classifier.
type Ensemble struct {
	generator  repository.TextGenerator
	classifier repository.Classifier
	policy     retry.Policy
	metrics    *metrics.Metrics
	logger     *logger.Logger
}

// New creates an Ensemble. Both branches use policy for retries.
func New(generator repository.TextGenerator, classifier repository.Classifier, policy retry.Policy, m *metrics.Metrics, log *logger.Logger) *Ensemble {
	return &Ensemble{
		generator:  generator,
		classifier: classifier,
		policy:     policy,
		metrics:    m,
		logger:     log.Named("credibility"),
	}
}

// Check runs both models concurrently and blends their scores. A failing branch falls back to
// its neutral default, so Check always returns a result.
func (e *Ensemble) Check(ctx context.Context, title, text string) dto.CredibilityResult {
	var (
		wg         sync.WaitGroup
		judgment   dto.GenerativeJudgment
		classifier = dto.ClassifierResult{Label: unknownLabel, Confidence: defaultClassifierConf}
	)

	wg.Add(2)
	utils.GoSafe(func() {
		defer wg.Done()
		j, err := e.judge(ctx, title, text)
		if err != nil {
			e.logger.Warn("Generative credibility check failed, using default", logger.ErrorField(err))
			return
		}
		judgment = j
	})
	utils.GoSafe(func() {
		defer wg.Done()
		c, err := e.classify(ctx, text)
		if err != nil {
			e.logger.Warn("Classifier check failed, using default", logger.ErrorField(err))
			return
		}
		classifier = c
	})
	wg.Wait()

	result := Blend(judgment, classifier)
	e.metrics.Credibility.WithLabelValues(string(result.Verdict)).Inc()
	return result
}

func (e *Ensemble) judge(ctx context.Context, title, text string) (dto.GenerativeJudgment, error) {
	prompt := repository.BuildCredibilityPrompt(title, text)
	var judgment dto.GenerativeJudgment
	err := e.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		reply, err := e.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(utils.StripCodeFence(reply)), &judgment); err != nil {
			return fmt.Errorf("failed to decode credibility judgment: %w", err)
		}
		return nil
	})
	return judgment, err
}

func (e *Ensemble) classify(ctx context.Context, text string) (dto.ClassifierResult, error) {
	var result dto.ClassifierResult
	err := e.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		r, err := e.classifier.Classify(ctx, text)
		if err != nil {
			if errors.Is(err, repository.ErrClassifierDisabled) {
				return retry.Permanent(err)
			}
			return err
		}
		result = r
		return nil
	})
	return result, err
}

// Blend combines the two model outputs: round(gen*0.6 + round(conf*100)*0.4).
func Blend(judgment dto.GenerativeJudgment, classifier dto.ClassifierResult) dto.CredibilityResult {
	genScore := defaultGenerativeScore
	if judgment.CredibilityScore != nil {
		genScore = int(math.Round(math.Max(0, math.Min(100, *judgment.CredibilityScore))))
	}
	genVerdict := utils.FirstNonEmpty(judgment.Verdict, unknownLabel)

	confPct := int(math.Round(classifier.Confidence * 100))
	score := int(math.Round(float64(genScore)*generativeWeight + float64(confPct)*classifierWeight))

	explanation := judgment.Explanation
	if explanation == "" {
		explanation = fmt.Sprintf("Ensemble analysis: generative model scored %d/100, classifier confidence %d%% (%s).",
			genScore, confPct, classifier.Label)
	}
	redFlags := judgment.RedFlags
	if redFlags == nil {
		redFlags = []string{}
	}

	return dto.CredibilityResult{
		CredibilityScore:     score,
		Verdict:              entity.VerdictForScore(score),
		Badge:                entity.Badge(score),
		Explanation:          explanation,
		RedFlags:             redFlags,
		ClassifierLabel:      classifier.Label,
		ClassifierConfidence: classifier.Confidence,
		Models: dto.ModelBreakdown{
			Generative: dto.GenerativeModelResult{Score: genScore, Verdict: genVerdict},
			Classifier: classifier,
		},
	}
}
