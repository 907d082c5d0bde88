package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"golang-news-globe/internal/entity"
)

// NewsArticleRepository persists analyzed articles and their fetch batches.
type NewsArticleRepository interface {
	FindByID(ctx context.Context, id string) (*entity.NewsArticle, error)
	FindByBatch(ctx context.Context, batchID string) ([]entity.NewsArticle, error)
	SaveBatch(ctx context.Context, articles []entity.NewsArticle, fetchLog *entity.FetchLog) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewNewsArticleRepository creates a new instance of NewsArticleRepository.
func NewNewsArticleRepository(db *gorm.DB) NewsArticleRepository {
	return &newsArticleRepository{db: db}
}

type newsArticleRepository struct {
	db *gorm.DB
}

func (r *newsArticleRepository) FindByID(ctx context.Context, id string) (*entity.NewsArticle, error) {
	var article entity.NewsArticle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find article %s: %w", id, err)
	}
	return &article, nil
}

// FindByBatch returns a batch's articles in their original order.
func (r *newsArticleRepository) FindByBatch(ctx context.Context, batchID string) ([]entity.NewsArticle, error) {
	var articles []entity.NewsArticle
	err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("position ASC").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find batch %s: %w", batchID, err)
	}
	return articles, nil
}

// SaveBatch writes the articles and the fetch log row in one transaction. Articles that already
// exist (an unchanged refetch) are moved into the new batch.
func (r *newsArticleRepository) SaveBatch(ctx context.Context, articles []entity.NewsArticle, fetchLog *entity.FetchLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(articles) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"scope", "batch_id", "position", "fetched_at"}),
			}).Create(&articles).Error
			if err != nil {
				return fmt.Errorf("failed to save articles: %w", err)
			}
		}
		if err := tx.Create(fetchLog).Error; err != nil {
			return fmt.Errorf("failed to save fetch log: %w", err)
		}
		return nil
	})
}

// DeleteOlderThan removes articles fetched before cutoff that no current batch references.
func (r *newsArticleRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		DELETE FROM news_articles
		WHERE fetched_at < ?
		AND batch_id NOT IN (
			SELECT DISTINCT ON (scope) batch_id
			FROM news_fetch_logs
			ORDER BY scope, fetched_at DESC, id DESC
		)`, cutoff)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune articles: %w", res.Error)
	}
	return res.RowsAffected, nil
}
