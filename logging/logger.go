package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface used across the module.
type Logger interface {
	// Debug logs a message at DebugLevel.
	Debug(msg string, fields ...zap.Field)
	// Info logs a message at InfoLevel.
	Info(msg string, fields ...zap.Field)
	// Warn logs a message at WarnLevel.
	Warn(msg string, fields ...zap.Field)
	// Error logs a message at ErrorLevel.
	Error(msg string, fields ...zap.Field)

	// With creates a child logger with additional fields.
	With(fields ...zap.Field) Logger
	// WithError creates a child logger with an error field.
	WithError(err error) Logger
	// Named creates a child logger with the given name.
	Named(name string) Logger

	// Zap returns the underlying *zap.Logger.
	Zap() *zap.Logger
	// Sync flushes any buffered log entries.
	Sync() error
}

// zapLogger wraps *zap.Logger to implement the Logger interface.
type zapLogger struct {
	zl *zap.Logger
}

// NewLogger creates a new Logger from the given Config.
func NewLogger(config Config) Logger {
	config.applyDefaults()

	zl := zap.New(zapcore.NewTee(buildCores(config)...))
	if config.ShowLineNumber {
		zl = zl.WithOptions(zap.AddCaller(), zap.AddCallerSkip(1))
	}
	return &zapLogger{zl: zl}
}

// FromZap wraps an existing *zap.Logger as a Logger.
func FromZap(zl *zap.Logger) Logger {
	return &zapLogger{zl: zl}
}

func (l *zapLogger) Debug(msg string, fields ...zap.Field) {
	l.zl.Debug(msg, fields...)
}

func (l *zapLogger) Info(msg string, fields ...zap.Field) {
	l.zl.Info(msg, fields...)
}

func (l *zapLogger) Warn(msg string, fields ...zap.Field) {
	l.zl.Warn(msg, fields...)
}

func (l *zapLogger) Error(msg string, fields ...zap.Field) {
	l.zl.Error(msg, fields...)
}

func (l *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{zl: l.zl.With(fields...)}
}

func (l *zapLogger) WithError(err error) Logger {
	return l.With(zap.Error(err))
}

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{zl: l.zl.Named(name)}
}

func (l *zapLogger) Zap() *zap.Logger {
	return l.zl
}

func (l *zapLogger) Sync() error {
	return l.zl.Sync()
}

// encoderConfig maps the Config keys onto a zapcore encoder.
func encoderConfig(config Config) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:    "message",
		LevelKey:      "level",
		TimeKey:       "time",
		NameKey:       "logger",
		CallerKey:     "caller",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(config.Prefix + t.Format(config.TimeFormat))
		},
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

func newEncoder(config Config) zapcore.Encoder {
	if config.Format == "console" {
		return zapcore.NewConsoleEncoder(encoderConfig(config))
	}
	return zapcore.NewJSONEncoder(encoderConfig(config))
}

// buildCores creates one core per enabled level, each with its own level
// file, the way the framework separates log output.
func buildCores(config Config) []zapcore.Core {
	cores := make([]zapcore.Core, 0, 5)
	for level := config.TransportLevel(); level <= zapcore.FatalLevel; level++ {
		exact := level
		enabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l == exact
		})
		cores = append(cores, zapcore.NewCore(newEncoder(config), levelSyncer(config, exact.String()), enabler))
	}
	return cores
}
