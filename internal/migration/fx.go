package migration

import (
	"github.com/smallbiznis/rankinvoice/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module migrates the database on startup. Nothing runs when the counter
// lives in Redis and no database was opened.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg db.Config, log *zap.Logger) error {
		if conn == nil {
			return nil
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB, cfg.Type); err != nil {
			return err
		}

		log.Named("migrations").Info("database schema up to date", zap.String("type", cfg.Type))
		return nil
	}),
)
