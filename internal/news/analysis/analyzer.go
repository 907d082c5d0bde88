package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/dto"
	"golang-news-globe/internal/news/metrics"
	"golang-news-globe/internal/news/repository"
	"golang-news-globe/pkg/common"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/retry"
	"golang-news-globe/pkg/utils"
)

// Analyzer enriches raw articles through a generative model in fixed-size batches.
// Its output always has the same length and order as its input.
type Analyzer struct {
	generator       repository.TextGenerator
	policy          retry.Policy
	batchSize       int
	concurrency     int
	defaultCategory entity.Category
	metrics         *metrics.Metrics
	logger          *logger.Logger
	newID           func() string
	now             func() time.Time
}

// Option configures an Analyzer.
type Option func(*Analyzer)

func WithBatchSize(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.batchSize = n
		}
	}
}

// WithConcurrency bounds how many batches are in flight at once.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

func WithPolicy(p retry.Policy) Option {
	return func(a *Analyzer) { a.policy = p }
}

// WithDefaultCategory sets the category used when neither the model nor a hint provides one.
func WithDefaultCategory(c entity.Category) Option {
	return func(a *Analyzer) { a.defaultCategory = c }
}

func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(a *Analyzer) { a.newID = gen }
}

// New creates an Analyzer with 25-article batches and the AI batch retry policy.
func New(generator repository.TextGenerator, m *metrics.Metrics, log *logger.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		generator:       generator,
		policy:          retry.AIBatchPolicy(),
		batchSize:       common.AnalysisBatchSize,
		concurrency:     1,
		defaultCategory: entity.CategoryTechnology,
		metrics:         m,
		logger:          log.Named("analysis"),
		newID:           uuid.NewString,
		now:             utils.TimeNowUTC,
	}
	for _, opt := range opts {
		opt(a)
	}
	onRetry := a.policy.OnRetry
	a.policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		a.metrics.AnalysisRetries.Inc()
		a.logger.Warn("Retrying analysis batch",
			logger.IntField("attempt", attempt),
			logger.DurationField("delay", delay),
			logger.ErrorField(err),
		)
		if onRetry != nil {
			onRetry(attempt, delay, err)
		}
	}
	return a
}

// Analyze runs AnalyzeRecords and zips the records onto the articles, assigning fresh ids.
func (a *Analyzer) Analyze(ctx context.Context, articles []dto.RawArticle, hints ...string) []entity.NewsArticle {
	records := a.AnalyzeRecords(ctx, articles, hints...)
	if len(records) != len(articles) {
		a.logger.Error("Analysis length mismatch, using defaults",
			logger.IntField("records", len(records)),
			logger.IntField("articles", len(articles)),
		)
		records = make([]dto.AnalysisRecord, len(articles))
		for i, raw := range articles {
			records[i] = DefaultRecord(raw, a.categoryFor(hintAt(hints, i)))
		}
	}

	now := a.now()
	out := make([]entity.NewsArticle, len(articles))
	for i, raw := range articles {
		out[i] = Zip(a.newID(), raw, records[i], now)
		out[i].Position = i
	}
	return out
}

// AnalyzeRecords returns one normalized record per article, in input order. Hints are category
// hints: one per article, or a single hint applied to all.
func (a *Analyzer) AnalyzeRecords(ctx context.Context, articles []dto.RawArticle, hints ...string) []dto.AnalysisRecord {
	results := make([]dto.AnalysisRecord, len(articles))
	for i, raw := range articles {
		results[i] = DefaultRecord(raw, a.categoryFor(hintAt(hints, i)))
	}
	if len(articles) == 0 {
		return results
	}

	sem := make(chan struct{}, a.concurrency)
	var wg sync.WaitGroup
	for start := 0; start < len(articles); start += a.batchSize {
		end := min(start+a.batchSize, len(articles))
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			records := a.analyzeBatch(ctx, articles[start:end], start, hints)
			copy(results[start:end], records)
		})
	}
	wg.Wait()
	return results
}

func (a *Analyzer) analyzeBatch(ctx context.Context, batch []dto.RawArticle, offset int, hints []string) []dto.AnalysisRecord {
	prompt := repository.BuildBatchAnalysisPrompt(batch)

	var parsed []dto.AnalysisRecord
	err := a.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		text, err := a.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		records, err := ParseRecords(text, len(batch))
		if err != nil {
			return err
		}
		parsed = records
		return nil
	})

	out := make([]dto.AnalysisRecord, len(batch))
	if err != nil {
		a.metrics.AnalysisBatches.WithLabelValues("fallback").Inc()
		a.logger.Error("Analysis batch failed, using defaults",
			logger.ErrorField(err),
			logger.IntField("offset", offset),
			logger.IntField("size", len(batch)),
		)
		for i, raw := range batch {
			out[i] = DefaultRecord(raw, a.categoryFor(hintAt(hints, offset+i)))
		}
		return out
	}

	a.metrics.AnalysisBatches.WithLabelValues("success").Inc()
	for i, raw := range batch {
		out[i] = Normalize(parsed[i], raw, a.categoryFor(hintAt(hints, offset+i)))
	}
	return out
}

// Summarize asks for a short summary and named entities of one text.
func (a *Analyzer) Summarize(ctx context.Context, title, text string) (dto.SummaryResponse, error) {
	prompt := repository.BuildSummaryPrompt(title, text)

	var result dto.SummaryResponse
	err := retry.InferencePolicy().Do(ctx, func(ctx context.Context, attempt int) error {
		reply, err := a.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(utils.StripCodeFence(reply)), &result); err != nil {
			return fmt.Errorf("failed to decode summary: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.SummaryResponse{}, fmt.Errorf("failed to summarize: %w", err)
	}
	result.Entities = NormalizeEntities(result.Entities)
	return result, nil
}

func (a *Analyzer) categoryFor(hint string) entity.Category {
	if c, ok := entity.ParseCategory(hint); ok {
		return c
	}
	return a.defaultCategory
}

func hintAt(hints []string, i int) string {
	switch {
	case len(hints) == 1:
		return hints[0]
	case i < len(hints):
		return hints[i]
	default:
		return ""
	}
}
