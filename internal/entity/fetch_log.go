package entity

import (
	"time"

	"github.com/lib/pq"
)

// FetchLog records one fetch batch for a scope. The newest row per scope points at the current batch.
type FetchLog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Scope       string         `gorm:"index;not null" json:"scope"`
	BatchID     string         `gorm:"type:uuid;not null" json:"batch_id"`
	ItemCount   int            `json:"item_count"`
	ContentHash string         `json:"content_hash"`
	Providers   pq.StringArray `gorm:"type:text[]" json:"providers"`
	FetchedAt   time.Time      `gorm:"index;not null" json:"fetched_at"`
}

func (FetchLog) TableName() string {
	return "news_fetch_logs"
}
