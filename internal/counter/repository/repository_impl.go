package repository

import (
	"context"
	"errors"
	"time"

	counterdomain "github.com/smallbiznis/rankinvoice/internal/counter/domain"
	"github.com/smallbiznis/rankinvoice/pkg/db"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository stores slots in the kv_entries table.
func NewRepository(db *gorm.DB) counterdomain.Store {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, counterdomain.ErrInvalidKey
	}

	var entry counterdomain.Entry
	err := r.db.WithContext(ctx).Raw(
		`SELECT slot_key, slot_value, updated_at
		 FROM kv_entries
		 WHERE slot_key = ?`,
		key,
	).Scan(&entry).Error
	if err != nil {
		return "", false, err
	}
	if entry.Key == "" {
		return "", false, nil
	}
	return entry.Value, true, nil
}

func (r *repository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return counterdomain.ErrInvalidKey
	}

	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Create(&counterdomain.Entry{
		Key:       key,
		Value:     value,
		UpdatedAt: now,
	}).Error
	if err == nil {
		return nil
	}
	if !db.IsDuplicateKeyErr(err) {
		return err
	}

	res := r.db.WithContext(ctx).Exec(
		`UPDATE kv_entries
		 SET slot_value = ?, updated_at = ?
		 WHERE slot_key = ?`,
		value,
		now,
		key,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("kv entry vanished during update")
	}
	return nil
}
