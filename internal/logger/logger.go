package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger so call sites depend on one project type instead
// of the zap API surface.
type Logger struct {
	*zap.Logger
}

// NewLogger creates a production logger writing JSON lines to stdout.
func NewLogger() (*Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: zapLogger}, nil
}

// NewTestLogger creates a no-op logger for tests.
func NewTestLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named returns a copy of the logger with the given name segment appended.
func (l *Logger) Named(name string) *Logger {
	if l.Logger == nil {
		return l
	}

	return &Logger{Logger: l.Logger.Named(name)}
}

// Sync flushes any buffered log entries. Safe to call with a nil inner
// logger.
func (l *Logger) Sync() error {
	if l.Logger == nil {
		return nil
	}

	return l.Logger.Sync()
}
