package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)
	suite.NotNil(logger.Logger)
}

func (suite *LoggerTestSuite) TestNewTestLogger() {
	logger := NewTestLogger()
	suite.NotNil(logger)
	suite.NotNil(logger.Logger)

	// A no-op logger must accept writes without side effects.
	logger.Info("quiet")
	suite.NoError(logger.Sync())
}

func (suite *LoggerTestSuite) TestSyncNilInnerLogger() {
	logger := &Logger{Logger: nil}

	// Sync must not panic when the inner logger was never built.
	suite.NoError(logger.Sync())
}

func (suite *LoggerTestSuite) TestNamed() {
	logger := NewTestLogger()

	named := logger.Named("api")
	suite.NotNil(named)
	suite.NotSame(logger, named)

	nilLogger := &Logger{Logger: nil}
	suite.Same(nilLogger, nilLogger.Named("api"))
}

func (suite *LoggerTestSuite) TestLoggingDoesNotPanic() {
	logger, err := NewLogger()
	suite.NoError(err)

	logger.Info("info message", zap.String("symbol", "AAPL"))
	logger.Debug("debug message")
	logger.Warn("warn message")
	logger.Error("error message", zap.Int("attempt", 1))
	logger.With(zap.String("region", "US")).Info("with fields")

	_ = logger.Sync()
}
