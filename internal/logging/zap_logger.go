package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap logger to cadpost.Logger.
// Verbose maps to debug level; messages are formatted printf-style.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a production JSON logger writing to stderr.
// Debug records are enabled only when verbose is true.
func NewZapLogger(verbose bool) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return NewZapLoggerFrom(logger.With(zap.String("service", "cadpost"))), nil
}

// NewZapLoggerFrom wraps an existing zap logger.
func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: logger.Sugar()}
}

// With returns a logger that adds the key/value pair to every record.
func (l *ZapLogger) With(key string, value interface{}) *ZapLogger {
	return &ZapLogger{sugar: l.sugar.With(key, value)}
}

func (l *ZapLogger) Verbose(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *ZapLogger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *ZapLogger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered records.
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}
