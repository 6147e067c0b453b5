package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"passcheq/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a SugaredLogger so callers get printf-style helpers.
type Logger struct {
	*zap.SugaredLogger
}

// InitLogger builds a logger from the logging section of the configuration.
func InitLogger(cfg *config.LoggingConfig) (*Logger, error) {
	var zapConfig zap.Config

	switch cfg.LogLevel {
	case "debug":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn", "":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		return nil, fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	if cfg.LogFile != "" {
		logDir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		zapConfig.OutputPaths = []string{cfg.LogFile, "stderr"}
	} else {
		zapConfig.OutputPaths = []string{"stderr"}
	}

	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{SugaredLogger: zapLogger.Sugar()}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// OrNop lets components accept a nil logger.
func OrNop(l *Logger) *Logger {
	if l == nil {
		return NewNop()
	}
	return l
}

// SyncLogger flushes any buffered log entries. Syncing stderr fails with
// EINVAL on terminals, so the error is dropped.
func (l *Logger) SyncLogger() {
	_ = l.Sync()
}
