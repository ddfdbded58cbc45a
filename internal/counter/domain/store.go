package domain

import (
	"context"
	"errors"
	"time"
)

// CounterKey is the single slot the invoice counter is persisted under.
const CounterKey = "invoiceCounter"

var (
	ErrStoreNotConfigured = errors.New("counter_store_not_configured")
	ErrInvalidKey         = errors.New("invalid_key")
)

// Store is a durable string key-value store.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Entry is the row backing a slot in SQL stores.
type Entry struct {
	Key       string    `gorm:"column:slot_key;primaryKey;type:varchar(191)"`
	Value     string    `gorm:"column:slot_value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (Entry) TableName() string { return "kv_entries" }

// Service is the invoice counter. Only the export-success path may call
// Advance.
type Service interface {
	Load(ctx context.Context) error
	Value() int64
	Current() string
	Advance(ctx context.Context) (string, error)
}
