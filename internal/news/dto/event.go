package dto

import "time"

// CacheInvalidation is published on the invalidation stream after a scope's entry is replaced.
type CacheInvalidation struct {
	Scope     string    `json:"scope"`
	Changed   bool      `json:"changed"`
	Articles  int       `json:"articles"`
	FetchedAt time.Time `json:"fetched_at"`
}
