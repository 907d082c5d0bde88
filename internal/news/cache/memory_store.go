package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries in process. Each Save swaps the stored pointer.
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore creates a store whose entries are evicted after retention (0 keeps them forever).
func NewMemoryStore(retention time.Duration) *MemoryStore {
	exp := gocache.NoExpiration
	cleanup := time.Duration(0)
	if retention > 0 {
		exp = retention
		cleanup = retention
	}
	return &MemoryStore{items: gocache.New(exp, cleanup)}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Load(_ context.Context, scope string) (*Entry, error) {
	v, ok := m.items.Get(scope)
	if !ok {
		return nil, ErrMiss
	}
	entry := *v.(*Entry)
	return &entry, nil
}

func (m *MemoryStore) Save(_ context.Context, entry Entry) error {
	m.items.Set(entry.Scope, &entry, gocache.DefaultExpiration)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, scope string) error {
	m.items.Delete(scope)
	return nil
}
