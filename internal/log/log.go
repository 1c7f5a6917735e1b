package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines a logger with multiple logging levels. Calls should pass a
// brief message describing what happened followed by key value pairs, e.g.
//
// logger.Info("sieve built", "primes", 68906)
type Logger interface {
	Info(msg string, keyvals ...interface{})
	Debug(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})

	// With adds key value pairs to the logging context. The first element of
	// each pair is the key and the second the value.
	With(keyvals ...interface{}) Logger
}

// StructuredLogger implements Logger on top of a zap SugaredLogger
type StructuredLogger struct {
	zl *zap.SugaredLogger
}

// NewStructuredLogger creates a JSON StructuredLogger writing to stderr at
// the named level. Unknown levels fall back to INFO.
func NewStructuredLogger(level string) (StructuredLogger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	config := zap.Config{
		Level:             zap.NewAtomicLevel(),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: true,
		Encoding:          "json",
		EncoderConfig:     encoderConfig,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	switch level {
	case "DEBUG":
		config.Level.SetLevel(zapcore.DebugLevel)
		config.Development = true
	case "WARN":
		config.Level.SetLevel(zapcore.WarnLevel)
	case "ERROR":
		config.Level.SetLevel(zapcore.ErrorLevel)
	default:
		config.Level.SetLevel(zapcore.InfoLevel)
	}

	l, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return StructuredLogger{}, err
	}

	return StructuredLogger{zl: l.Sugar()}, nil
}

// NewStructuredLoggerFromSugar wraps an existing SugaredLogger
func NewStructuredLoggerFromSugar(s *zap.SugaredLogger) StructuredLogger {
	return StructuredLogger{zl: s}
}

func (s StructuredLogger) Info(msg string, keyvals ...interface{}) {
	s.zl.Infow(msg, keyvals...)
}

func (s StructuredLogger) Debug(msg string, keyvals ...interface{}) {
	s.zl.Debugw(msg, keyvals...)
}

func (s StructuredLogger) Error(msg string, keyvals ...interface{}) {
	s.zl.Errorw(msg, keyvals...)
}

func (s StructuredLogger) Warn(msg string, keyvals ...interface{}) {
	s.zl.Warnw(msg, keyvals...)
}

// With returns a logger that always logs the passed key value pairs
func (s StructuredLogger) With(keyvals ...interface{}) Logger {
	return StructuredLogger{zl: s.zl.With(keyvals...)}
}

// Sync flushes any buffered log entries
func (s StructuredLogger) Sync() error {
	return s.zl.Sync()
}
