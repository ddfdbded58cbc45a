package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	counterdomain "github.com/smallbiznis/rankinvoice/internal/counter/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&counterdomain.Entry{}))
	return db
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	value, ok, err := repo.Get(context.Background(), counterdomain.CounterKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestRepositorySetThenOverwrite(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.Set(ctx, counterdomain.CounterKey, "7"))
	value, ok, err := repo.Get(ctx, counterdomain.CounterKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "7", value)

	require.NoError(t, repo.Set(ctx, counterdomain.CounterKey, "8"))
	value, _, err = repo.Get(ctx, counterdomain.CounterKey)
	require.NoError(t, err)
	assert.Equal(t, "8", value)

	var rows int64
	require.NoError(t, db.Model(&counterdomain.Entry{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRepositoryRejectsEmptyKey(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	_, _, err := repo.Get(context.Background(), "")
	assert.ErrorIs(t, err, counterdomain.ErrInvalidKey)
	assert.ErrorIs(t, repo.Set(context.Background(), "", "1"), counterdomain.ErrInvalidKey)
}

func TestRedisStoreWithoutClient(t *testing.T) {
	store := NewRedisStore(nil, "rankinvoice:")

	_, _, err := store.Get(context.Background(), counterdomain.CounterKey)
	assert.ErrorIs(t, err, counterdomain.ErrStoreNotConfigured)
	assert.ErrorIs(t, store.Set(context.Background(), counterdomain.CounterKey, "1"), counterdomain.ErrStoreNotConfigured)
}
