package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/smallbiznis/rankinvoice/pkg/log/ctxlogger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// GormLoggerConfig configures the GORM zap logger.
type GormLoggerConfig struct {
	Level                gormlogger.LogLevel
	SlowThreshold        time.Duration
	IgnoreRecordNotFound bool
}

// DefaultGormLoggerConfig logs failed and slow statements only. The slot
// store reads with Scan, so a missing row is never an error worth logging.
func DefaultGormLoggerConfig() GormLoggerConfig {
	return GormLoggerConfig{
		Level:                gormlogger.Warn,
		SlowThreshold:        200 * time.Millisecond,
		IgnoreRecordNotFound: true,
	}
}

// GormLogger routes GORM output through zap with the request's correlation
// fields attached. Bound values are never logged.
type GormLogger struct {
	log  *zap.Logger
	conf GormLoggerConfig
}

func NewGormLogger(log *zap.Logger, cfg GormLoggerConfig) *GormLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &GormLogger{log: log.Named("gorm"), conf: cfg}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.conf.Level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	l.print(ctx, gormlogger.Info, zapcore.InfoLevel, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.print(ctx, gormlogger.Warn, zapcore.WarnLevel, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	l.print(ctx, gormlogger.Error, zapcore.ErrorLevel, msg, data)
}

func (l *GormLogger) print(ctx context.Context, min gormlogger.LogLevel, lvl zapcore.Level, msg string, data []interface{}) {
	if l.conf.Level < min {
		return
	}
	var fields []zap.Field
	if len(data) > 0 {
		fields = append(fields, zap.Any("data", data))
	}
	if ce := l.logger(ctx).Check(lvl, msg); ce != nil {
		ce.Write(fields...)
	}
}

// Trace logs one executed statement when it failed, ran slow or the level
// asks for every statement.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	lvl, ok := l.queryLevel(elapsed, err)
	if !ok {
		return
	}

	sql, rows := fc()
	op, table := describeSQL(sql)
	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("table", table),
		zap.String("sql", strings.TrimSpace(sql)),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows_affected", rows))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}

	msg := "gorm.query"
	if lvl == zapcore.WarnLevel {
		msg = "gorm.slow_query"
	}
	if ce := l.logger(ctx).Check(lvl, msg); ce != nil {
		ce.Write(fields...)
	}
}

func (l *GormLogger) queryLevel(elapsed time.Duration, err error) (zapcore.Level, bool) {
	level := l.conf.Level
	switch {
	case level <= gormlogger.Silent:
		return 0, false
	case err != nil && level >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) && l.conf.IgnoreRecordNotFound {
			return 0, false
		}
		return zapcore.ErrorLevel, true
	case l.conf.SlowThreshold > 0 && elapsed > l.conf.SlowThreshold && level >= gormlogger.Warn:
		return zapcore.WarnLevel, true
	case level >= gormlogger.Info:
		return zapcore.DebugLevel, true
	default:
		return 0, false
	}
}

// ParamsFilter drops bound values; slot contents stay out of the logs.
func (l *GormLogger) ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{}) {
	return sql, nil
}

func (l *GormLogger) logger(ctx context.Context) *zap.Logger {
	return ctxlogger.WithContext(ctx, l.log)
}

// describeSQL returns the statement verb and the first table it touches.
func describeSQL(sql string) (string, string) {
	tokens := strings.Fields(strings.TrimSpace(sql))
	op, table := "UNKNOWN", ""

	for i, token := range tokens {
		word := strings.ToUpper(strings.Trim(token, "();"))
		switch word {
		case "SELECT", "INSERT", "UPDATE", "DELETE", "MERGE", "CREATE", "DROP":
			if op == "UNKNOWN" {
				op = word
			}
			if word == "UPDATE" && table == "" {
				table = nextTable(tokens[i+1:])
			}
		case "FROM", "INTO", "TABLE":
			if table == "" {
				table = nextTable(tokens[i+1:])
			}
		}
	}
	return op, table
}

func nextTable(rest []string) string {
	for _, token := range rest {
		switch strings.ToUpper(token) {
		case "IF", "NOT", "EXISTS":
			continue
		}
		return strings.Trim(token, "`\"();")
	}
	return ""
}

var _ gormlogger.Interface = (*GormLogger)(nil)
