package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	counterdomain "github.com/smallbiznis/rankinvoice/internal/counter/domain"
	"github.com/smallbiznis/rankinvoice/internal/counter/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func newTestService(store counterdomain.Store) counterdomain.Service {
	return NewService(ServiceParam{Log: zap.NewNop(), Store: store})
}

func TestLoadDefaults(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		found bool
		want  int64
	}{
		{name: "absent", found: false, want: 0},
		{name: "stored", raw: "7", found: true, want: 7},
		{name: "padded", raw: " 12 ", found: true, want: 12},
		{name: "garbage", raw: "seven", found: true, want: 0},
		{name: "negative", raw: "-4", found: true, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockStore)
			store.On("Get", mock.Anything, counterdomain.CounterKey).Return(tc.raw, tc.found, nil)

			svc := newTestService(store)
			require.NoError(t, svc.Load(context.Background()))
			assert.Equal(t, tc.want, svc.Value())
			store.AssertExpectations(t)
		})
	}
}

func TestLoadPropagatesStoreError(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, counterdomain.CounterKey).Return("", false, errors.New("unreachable"))

	err := newTestService(store).Load(context.Background())
	assert.Error(t, err)
}

func TestCurrentDoesNotMutate(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, counterdomain.CounterKey).Return("7", true, nil)

	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	assert.Equal(t, "Invoice No. 0007", svc.Current())
	assert.Equal(t, "Invoice No. 0007", svc.Current())
	assert.Equal(t, int64(7), svc.Value())
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdvancePersistsNextValue(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, counterdomain.CounterKey).Return("7", true, nil)
	store.On("Set", mock.Anything, counterdomain.CounterKey, "8").Return(nil).Once()

	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	id, err := svc.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Invoice No. 0008", id)
	assert.Equal(t, int64(8), svc.Value())
	store.AssertExpectations(t)
}

func TestAdvanceFailureKeepsValue(t *testing.T) {
	store := new(mockStore)
	store.On("Get", mock.Anything, counterdomain.CounterKey).Return("3", true, nil)
	store.On("Set", mock.Anything, counterdomain.CounterKey, "4").Return(errors.New("disk full"))

	svc := newTestService(store)
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.Advance(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int64(3), svc.Value())
	assert.Equal(t, "Invoice No. 0003", svc.Current())
}

func TestNilStore(t *testing.T) {
	svc := NewService(ServiceParam{Log: zap.NewNop()})

	assert.ErrorIs(t, svc.Load(context.Background()), counterdomain.ErrStoreNotConfigured)
	_, err := svc.Advance(context.Background())
	assert.ErrorIs(t, err, counterdomain.ErrStoreNotConfigured)
}

func TestCounterSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&counterdomain.Entry{}))

	first := newTestService(repository.NewRepository(db))
	require.NoError(t, first.Load(ctx))
	assert.Equal(t, "Invoice No. 0000", first.Current())

	for i := 0; i < 3; i++ {
		_, err := first.Advance(ctx)
		require.NoError(t, err)
	}

	second := newTestService(repository.NewRepository(db))
	require.NoError(t, second.Load(ctx))
	assert.Equal(t, int64(3), second.Value())
	assert.Equal(t, "Invoice No. 0003", second.Current())

	id, err := second.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Invoice No. 0004", id)
}
