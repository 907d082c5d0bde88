package cache

import (
	"context"
	"errors"
	"fmt"

	"golang-news-globe/pkg/logger"
)

// TieredStore reads from the first store holding an entry and writes to every store.
// Tiers are ordered fastest first; a hit in a lower tier is copied into the tiers above it.
type TieredStore struct {
	tiers  []Store
	logger *logger.Logger
}

func NewTieredStore(log *logger.Logger, tiers ...Store) *TieredStore {
	return &TieredStore{tiers: tiers, logger: log.Named("tiered-store")}
}

func (t *TieredStore) Name() string { return "tiered" }

func (t *TieredStore) Load(ctx context.Context, scope string) (*Entry, error) {
	for i, tier := range t.tiers {
		entry, err := tier.Load(ctx, scope)
		if errors.Is(err, ErrMiss) {
			continue
		}
		if err != nil {
			t.logger.Warn("Cache tier read failed",
				logger.StringField("tier", tier.Name()),
				logger.StringField("scope", scope),
				logger.ErrorField(err),
			)
			continue
		}
		for _, upper := range t.tiers[:i] {
			if err := upper.Save(ctx, *entry); err != nil {
				t.logger.Warn("Cache backfill failed", logger.StringField("tier", upper.Name()), logger.ErrorField(err))
			}
		}
		return entry, nil
	}
	return nil, ErrMiss
}

func (t *TieredStore) Save(ctx context.Context, entry Entry) error {
	var errs []error
	for _, tier := range t.tiers {
		if err := tier.Save(ctx, entry); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", tier.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (t *TieredStore) Delete(ctx context.Context, scope string) error {
	var errs []error
	for _, tier := range t.tiers {
		if err := tier.Delete(ctx, scope); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", tier.Name(), err))
		}
	}
	return errors.Join(errs...)
}
