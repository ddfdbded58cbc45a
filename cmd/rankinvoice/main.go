package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/rankinvoice/internal/clock"
	"github.com/smallbiznis/rankinvoice/internal/config"
	"github.com/smallbiznis/rankinvoice/internal/counter"
	"github.com/smallbiznis/rankinvoice/internal/invoice"
	"github.com/smallbiznis/rankinvoice/internal/logger"
	"github.com/smallbiznis/rankinvoice/internal/migration"
	"github.com/smallbiznis/rankinvoice/internal/providers/pdf"
	"github.com/smallbiznis/rankinvoice/internal/server"
	"github.com/smallbiznis/rankinvoice/pkg/db"
	"github.com/smallbiznis/rankinvoice/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),

		// Core Infrastructure
		config.Module,
		logger.Module,
		telemetry.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		clock.Module,

		// Invoice builder
		counter.Module,
		pdf.Module,
		invoice.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
