package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"golang-news-globe/internal/entity"
	"golang-news-globe/internal/news/repository"
)

// PostgresStore persists each Save as a new batch: the article rows plus a fetch-log row, written
// in one transaction. The newest fetch-log row of a scope is its current entry.
type PostgresStore struct {
	articles repository.NewsArticleRepository
	logs     repository.FetchLogRepository
	newID    func() string
}

func NewPostgresStore(articles repository.NewsArticleRepository, logs repository.FetchLogRepository) *PostgresStore {
	return &PostgresStore{articles: articles, logs: logs, newID: uuid.NewString}
}

func (p *PostgresStore) Name() string { return "postgres" }

func (p *PostgresStore) Load(ctx context.Context, scope string) (*Entry, error) {
	log, err := p.logs.Latest(ctx, scope)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	articles, err := p.articles.FindByBatch(ctx, log.BatchID)
	if err != nil {
		return nil, err
	}
	if len(articles) != log.ItemCount {
		return nil, fmt.Errorf("batch %s has %d articles, fetch log expects %d", log.BatchID, len(articles), log.ItemCount)
	}

	return &Entry{
		Scope:       scope,
		BatchID:     log.BatchID,
		Articles:    articles,
		FetchedAt:   log.FetchedAt,
		ContentHash: log.ContentHash,
		Providers:   log.Providers,
	}, nil
}

func (p *PostgresStore) Save(ctx context.Context, entry Entry) error {
	batchID := p.newID()
	rows := make([]entity.NewsArticle, len(entry.Articles))
	for i, a := range entry.Articles {
		a.Scope = entry.Scope
		a.BatchID = batchID
		a.Position = i
		a.FetchedAt = entry.FetchedAt
		rows[i] = a
	}

	return p.articles.SaveBatch(ctx, rows, &entity.FetchLog{
		Scope:       entry.Scope,
		BatchID:     batchID,
		ItemCount:   len(rows),
		ContentHash: entry.ContentHash,
		Providers:   entry.Providers,
		FetchedAt:   entry.FetchedAt,
	})
}

// Delete forgets the scope's batches. Article rows are removed later by pruning.
func (p *PostgresStore) Delete(ctx context.Context, scope string) error {
	return p.logs.DeleteScope(ctx, scope)
}
