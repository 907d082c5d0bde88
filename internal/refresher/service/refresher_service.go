package service

import (
	"context"
	"errors"
	"time"

	"golang-news-globe/internal/news/dto"
	"golang-news-globe/internal/news/repository"
	newsservice "golang-news-globe/internal/news/service"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/telegram"
	"golang-news-globe/pkg/utils"
)

// Outcome is the result of refreshing one scope.
type Outcome struct {
	Scope  string
	Result *newsservice.RefreshResult
	Err    error
}

// Pruner deletes persisted rows older than a cutoff.
type Pruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RefresherService keeps the configured scopes warm.
type RefresherService interface {
	RefreshAll(ctx context.Context) []Outcome
	Prune(ctx context.Context) (int64, error)
}

// Options tunes the refresher. Publisher, Notifier and Pruners may be empty.
type Options struct {
	Scopes       []string
	TopHeadlines int
	Retention    time.Duration
	Publisher    repository.CacheEventPublisher
	Notifier     telegram.Notifier
	Pruners      []Pruner
}

// NewRefresherService creates a new RefresherService.
func NewRefresherService(news newsservice.NewsService, opts Options, log *logger.Logger) RefresherService {
	return &refresherService{
		news:   news,
		opts:   opts,
		logger: log.Named("refresher"),
		now:    utils.TimeNowUTC,
	}
}

type refresherService struct {
	news   newsservice.NewsService
	opts   Options
	logger *logger.Logger
	now    func() time.Time
}

// RefreshAll refreshes the scopes one after another so generative calls do not burst,
// announces every rewritten entry and sends a digest when anything changed.
func (s *refresherService) RefreshAll(ctx context.Context) []Outcome {
	outcomes := make([]Outcome, 0, len(s.opts.Scopes))
	for _, scope := range s.opts.Scopes {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		res, err := s.news.Refresh(ctx, scope)
		outcomes = append(outcomes, Outcome{Scope: scope, Result: res, Err: err})
		if err != nil {
			s.logger.Error("Refresh failed", logger.StringField("scope", scope), logger.ErrorField(err))
			continue
		}
		if res.Skipped {
			s.logger.Info("Scope still fresh", logger.StringField("scope", scope), logger.IntField("hours_since", res.HoursSince))
			continue
		}
		s.publish(ctx, res)
	}
	s.notify(ctx, outcomes)
	return outcomes
}

func (s *refresherService) publish(ctx context.Context, res *newsservice.RefreshResult) {
	if s.opts.Publisher == nil || res.Response == nil || res.Response.Stale {
		return
	}
	event := dto.CacheInvalidation{
		Scope:     res.Scope,
		Changed:   res.Changed,
		Articles:  res.Response.TotalArticles,
		FetchedAt: res.Response.FetchedAt,
	}
	if err := s.opts.Publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish invalidation", logger.StringField("scope", res.Scope), logger.ErrorField(err))
		return
	}
	s.logger.Info("Invalidation published", logger.StringField("scope", res.Scope), logger.Field("changed", res.Changed))
}

func (s *refresherService) notify(ctx context.Context, outcomes []Outcome) {
	if s.opts.Notifier == nil {
		return
	}
	changed := false
	digests := make([]telegram.ScopeDigest, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil || o.Result == nil {
			continue
		}
		changed = changed || o.Result.Changed
		digests = append(digests, s.digest(o.Result))
	}
	if !changed {
		return
	}
	if err := telegram.SendAll(ctx, s.opts.Notifier, telegram.FormatRefreshDigest(digests)); err != nil {
		s.logger.Error("Failed to send refresh digest", logger.ErrorField(err))
	}
}

func (s *refresherService) digest(res *newsservice.RefreshResult) telegram.ScopeDigest {
	d := telegram.ScopeDigest{Scope: res.Scope, Changed: res.Changed, Skipped: res.Skipped}
	if res.Response == nil {
		return d
	}
	d.Articles = res.Response.TotalArticles
	d.FetchedAt = res.Response.FetchedAt
	for i, a := range res.Response.Articles {
		if i == s.opts.TopHeadlines {
			break
		}
		d.Top = append(d.Top, telegram.Headline{
			Title:       a.Title,
			Source:      a.Source,
			URL:         a.URL,
			Sentiment:   string(a.Sentiment),
			Credibility: a.CredibilityScore,
		})
	}
	return d
}

// Prune removes rows fetched before the retention cutoff. The latest batch of each scope is kept.
func (s *refresherService) Prune(ctx context.Context) (int64, error) {
	if s.opts.Retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.opts.Retention)
	var total int64
	var errs []error
	for _, p := range s.opts.Pruners {
		n, err := p.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		total += n
	}
	s.logger.Info("Pruned old rows", logger.Field("deleted", total), logger.Field("cutoff", cutoff))
	return total, errors.Join(errs...)
}
