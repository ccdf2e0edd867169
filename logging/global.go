package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	globalMu sync.RWMutex
	global   Logger
)

// Global returns the module-wide logger, building one from DefaultConfig on
// first use.
func Global() Logger {
	globalMu.RLock()
	l := global
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = NewLogger(DefaultConfig())
	}
	return global
}

// SetGlobal replaces the module-wide logger.
func SetGlobal(logger Logger) {
	globalMu.Lock()
	global = logger
	globalMu.Unlock()
}

// Init builds a logger from config and installs it as the module-wide one.
func Init(config Config) {
	SetGlobal(NewLogger(config))
}

// Debug logs a message at DebugLevel on the module-wide logger.
func Debug(msg string, fields ...zap.Field) {
	Global().Debug(msg, fields...)
}

// Info logs a message at InfoLevel on the module-wide logger.
func Info(msg string, fields ...zap.Field) {
	Global().Info(msg, fields...)
}

// Warn logs a message at WarnLevel on the module-wide logger.
func Warn(msg string, fields ...zap.Field) {
	Global().Warn(msg, fields...)
}

// Error logs a message at ErrorLevel on the module-wide logger.
func Error(msg string, fields ...zap.Field) {
	Global().Error(msg, fields...)
}

// Named derives a named child from the module-wide logger.
func Named(name string) Logger {
	return Global().Named(name)
}

// Sync flushes the module-wide logger.
func Sync() error {
	return Global().Sync()
}
