package cache

import (
	"context"
	"errors"
	"time"

	"golang-news-globe/internal/entity"
)

// ErrMiss is returned by a Store that holds no entry for a scope.
var ErrMiss = errors.New("cache miss")

// Entry is a whole cached result for one scope. Writes always replace a whole entry.
type Entry struct {
	Scope       string               `json:"scope"`
	BatchID     string               `json:"batchId"`
	Articles    []entity.NewsArticle `json:"articles"`
	FetchedAt   time.Time            `json:"fetchedAt"`
	ContentHash string               `json:"contentHash"`
	Providers   []string             `json:"providers"`
}

// Store is a backend for cache entries.
type Store interface {
	Name() string
	Load(ctx context.Context, scope string) (*Entry, error)
	Save(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, scope string) error
}
