package logger

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.Logger = zap.NewNop()
	mu     sync.RWMutex
)

// Setup builds the process-wide logger for the given environment and makes
// it available through the package-level functions. Call once from main.
func Setup(env string, level string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)

	lvl := zapcore.InfoLevel
	if parsed, perr := zapcore.ParseLevel(level); perr == nil {
		lvl = parsed
	}

	if env == "local" || env == "dev" {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		l, err = cfg.Build()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		l, err = cfg.Build()
	}
	if err != nil {
		log.Fatalf("cannot build logger: %s", err)
	}

	mu.Lock()
	global = l
	mu.Unlock()

	return l
}

// Logger returns the process-wide logger for middleware that needs the raw
// *zap.Logger (ginzap).
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func Debug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger().Error(msg, fields...)
}

// Audit writes a structured audit-trail event. Callers must mask personal
// data (see pkg/masker) before putting it into fields.
func Audit(category string, msg string, fields ...zap.Field) {
	Logger().Info(msg, append([]zap.Field{zap.String("category", category)}, fields...)...)
}
