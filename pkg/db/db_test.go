package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/smallbiznis/rankinvoice/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"postgres", errors.New(`ERROR: duplicate key value violates unique constraint "kv_entries_pkey" (SQLSTATE 23505)`), true},
		{"mysql", errors.New("Error 1062 (23000): Duplicate entry 'invoiceCounter' for key 'PRIMARY'"), true},
		{"sqlite", errors.New("UNIQUE constraint failed: kv_entries.slot_key"), true},
		{"other", errors.New("database is locked"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateKeyErr(tt.err))
		})
	}
}

func TestDialect(t *testing.T) {
	for _, typ := range []string{"sqlite", "", "postgres", "mysql", "POSTGRES"} {
		d, err := Dialect(Config{Type: typ, Name: "rankinvoice"})
		require.NoError(t, err, typ)
		assert.NotNil(t, d, typ)
	}

	_, err := Dialect(Config{Type: "oracle"})
	assert.Error(t, err)
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.Config{
		DBType:     "postgres",
		DBHost:     "db.local",
		DBName:     "rankinvoice",
		SQLitePath: "/tmp/x.db",
	})

	assert.Equal(t, "postgres", cfg.Type)
	assert.Equal(t, "db.local", cfg.Host)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.True(t, cfg.Instrument)
}
