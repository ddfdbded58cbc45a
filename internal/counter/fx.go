package counter

import (
	"context"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/rankinvoice/internal/config"
	counterdomain "github.com/smallbiznis/rankinvoice/internal/counter/domain"
	"github.com/smallbiznis/rankinvoice/internal/counter/repository"
	"github.com/smallbiznis/rankinvoice/internal/counter/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("counter.service",
	fx.Provide(newRedisClient),
	fx.Provide(newStore),
	fx.Provide(service.NewService),
	fx.Invoke(loadOnStart),
)

// newRedisClient returns nil unless the counter is configured for Redis.
func newRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	if !cfg.UsesRedis() {
		return nil, nil
	}

	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required for counter backend %q", cfg.CounterBackend)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

type storeParams struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	DB    *gorm.DB
	Redis *redis.Client
}

func newStore(p storeParams) (counterdomain.Store, error) {
	switch p.Cfg.CounterBackend {
	case config.CounterBackendRedis:
		if p.Redis == nil {
			return nil, fmt.Errorf("counter backend %q needs a redis client", p.Cfg.CounterBackend)
		}
		p.Log.Info("invoice counter stored in redis", zap.String("addr", p.Cfg.RedisAddr))
		return repository.NewRedisStore(p.Redis, p.Cfg.RedisKeyPrefix), nil
	case config.CounterBackendDatabase, "":
		if p.DB == nil {
			return nil, fmt.Errorf("counter backend %q needs a database", p.Cfg.CounterBackend)
		}
		p.Log.Info("invoice counter stored in database", zap.String("type", p.Cfg.DBType))
		return repository.NewRepository(p.DB), nil
	default:
		return nil, fmt.Errorf("unsupported counter backend %q", p.Cfg.CounterBackend)
	}
}

// loadOnStart reads the persisted counter once per process.
func loadOnStart(lc fx.Lifecycle, svc counterdomain.Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Load(ctx)
		},
	})
}
