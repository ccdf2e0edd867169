package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestTransportLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"unknown": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for level, want := range cases {
		c := Config{Level: level}
		if got := c.TransportLevel(); got != want {
			t.Fatalf("level %q: expected %v, got %v", level, want, got)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.applyDefaults()

	if c.Director != "logs" || c.Level != "info" || c.Format != "json" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.MaxAge == 0 || c.MaxSize == 0 || c.MaxBackups == 0 {
		t.Fatalf("rotation defaults must be set: %+v", c)
	}
}

func TestLoggerWritesLevelFiles(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(Config{
		Director:      dir,
		Level:         "info",
		LogInTerminal: false,
	})

	logger.Info("hello", zap.String("k", "v"))
	logger.Error("boom")
	if err := logger.Sync(); err != nil {
		t.Logf("sync: %v", err)
	}

	infoLog, err := os.ReadFile(filepath.Join(dir, "info.log"))
	if err != nil {
		t.Fatalf("expected info.log to exist: %v", err)
	}
	if !strings.Contains(string(infoLog), "hello") {
		t.Fatalf("expected info.log to contain the message, got: %s", infoLog)
	}

	errorLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	if err != nil {
		t.Fatalf("expected error.log to exist: %v", err)
	}
	if strings.Contains(string(errorLog), "hello") {
		t.Fatal("info output must not leak into error.log")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(Config{
		Director:      dir,
		Level:         "error",
		LogInTerminal: false,
	})

	logger.Info("suppressed")
	logger.Error("kept")
	_ = logger.Sync()

	if _, err := os.Stat(filepath.Join(dir, "info.log")); err == nil {
		t.Fatal("info core must not exist below the configured level")
	}
}

func TestGlobalLazyInit(t *testing.T) {
	first := Global()
	if first == nil {
		t.Fatal("expected Global to build a default logger")
	}
	if Global() != first {
		t.Fatal("expected repeated Global calls to return the same logger")
	}
}

func TestGlobalReplace(t *testing.T) {
	original := Global()
	defer SetGlobal(original)

	replacement := FromZap(zap.NewNop())
	SetGlobal(replacement)

	if Global() != replacement {
		t.Fatal("expected SetGlobal to replace the global logger")
	}
}

func TestNamedLogger(t *testing.T) {
	logger := FromZap(zap.NewNop()).Named("decode")
	if logger == nil {
		t.Fatal("expected a child logger")
	}
	logger.Debug("no-op")
}
