package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// LoggerI is the logging interface passed through the service.
type LoggerI interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Panic(msg string, fields ...Field)
}

type Field = zapcore.Field

type loggerImpl struct {
	zap *zap.Logger
}

func (l *loggerImpl) Debug(msg string, fields ...Field) { l.zap.Debug(msg, fields...) }
func (l *loggerImpl) Info(msg string, fields ...Field)  { l.zap.Info(msg, fields...) }
func (l *loggerImpl) Warn(msg string, fields ...Field)  { l.zap.Warn(msg, fields...) }
func (l *loggerImpl) Error(msg string, fields ...Field) { l.zap.Error(msg, fields...) }
func (l *loggerImpl) Panic(msg string, fields ...Field) { l.zap.Panic(msg, fields...) }

func parseLevel(level string) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewLogger builds a named zap logger for the service.
func NewLogger(namespace, level string) LoggerI {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	return &loggerImpl{zap: zl.Named(namespace)}
}

// Cleanup flushes buffered log entries.
func Cleanup(l LoggerI) error {
	if impl, ok := l.(*loggerImpl); ok {
		return impl.zap.Sync()
	}
	return nil
}
