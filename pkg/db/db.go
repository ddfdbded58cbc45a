package db

import (
	"context"
	"fmt"
	"time"

	"github.com/smallbiznis/rankinvoice/internal/config"
	obslogger "github.com/smallbiznis/rankinvoice/internal/observability/logger"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"
)

// Module provides a *gorm.DB for the configured dialect.
var Module = fx.Module("db",
	fx.Provide(ConfigFrom),
	fx.Provide(NewDB),
)

// Open connects with the given dialector and applies pool limits and
// instrumentation.
func Open(dialector gorm.Dialector, cfg Config, log *zap.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: obslogger.NewGormLogger(log, obslogger.DefaultGormLoggerConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Type, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	}
	if cfg.MaxOpenConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
	}

	if cfg.Instrument {
		if err := conn.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.Name))); err != nil {
			return nil, fmt.Errorf("register otelgorm: %w", err)
		}
		if err := conn.Use(gormprometheus.New(gormprometheus.Config{
			DBName:          cfg.Name,
			RefreshInterval: 15,
			StartServer:     false,
		})); err != nil {
			return nil, fmt.Errorf("register gorm prometheus: %w", err)
		}
	}

	return conn, nil
}

type dbParams struct {
	fx.In

	Lc     fx.Lifecycle
	AppCfg config.Config
	Cfg    Config
	Log    *zap.Logger
}

// NewDB opens the database unless the invoice counter lives in Redis.
func NewDB(p dbParams) (*gorm.DB, error) {
	if p.AppCfg.UsesRedis() {
		return nil, nil
	}

	dialector, err := Dialect(p.Cfg)
	if err != nil {
		return nil, err
	}
	conn, err := Open(dialector, p.Cfg, p.Log)
	if err != nil {
		return nil, err
	}

	p.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	p.Log.Info("database connected", zap.String("type", p.Cfg.Type))
	return conn, nil
}
