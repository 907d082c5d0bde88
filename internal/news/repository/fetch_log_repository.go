package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"golang-news-globe/internal/entity"
	"golang-news-globe/pkg/utils"
)

// FetchLogRepository reads and maintains the per-scope fetch history.
type FetchLogRepository interface {
	Latest(ctx context.Context, scope string) (*entity.FetchLog, error)
	HoursSinceLastFetch(ctx context.Context, scope string, now time.Time) (int, bool, error)
	DeleteScope(ctx context.Context, scope string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewFetchLogRepository creates a new instance of FetchLogRepository.
func NewFetchLogRepository(db *gorm.DB) FetchLogRepository {
	return &fetchLogRepository{db: db}
}

type fetchLogRepository struct {
	db *gorm.DB
}

// Latest returns the newest fetch log for scope, or ErrNotFound.
func (r *fetchLogRepository) Latest(ctx context.Context, scope string) (*entity.FetchLog, error) {
	var log entity.FetchLog
	err := r.db.WithContext(ctx).
		Where("scope = ?", scope).
		Order("fetched_at DESC").
		Order("id DESC").
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest fetch log: %w", err)
	}
	return &log, nil
}

// HoursSinceLastFetch reports whole hours since the newest fetch. The bool is false when scope was never fetched.
func (r *fetchLogRepository) HoursSinceLastFetch(ctx context.Context, scope string, now time.Time) (int, bool, error) {
	log, err := r.Latest(ctx, scope)
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return utils.HoursSince(log.FetchedAt, now), true, nil
}

func (r *fetchLogRepository) DeleteScope(ctx context.Context, scope string) error {
	if err := r.db.WithContext(ctx).Where("scope = ?", scope).Delete(&entity.FetchLog{}).Error; err != nil {
		return fmt.Errorf("failed to delete fetch logs for %s: %w", scope, err)
	}
	return nil
}

// DeleteOlderThan removes fetch logs before cutoff, keeping the newest row of every scope.
func (r *fetchLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		DELETE FROM news_fetch_logs
		WHERE fetched_at < ?
		AND id NOT IN (
			SELECT DISTINCT ON (scope) id
			FROM news_fetch_logs
			ORDER BY scope, fetched_at DESC, id DESC
		)`, cutoff)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune fetch logs: %w", res.Error)
	}
	return res.RowsAffected, nil
}
