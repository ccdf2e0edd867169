package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// Config represents the logger configuration.
type Config struct {
	// Director is the directory where log files are stored.
	Director string `mapstructure:"director" json:"director" yaml:"director" toml:"director"`

	// Level is the minimum log level (debug, info, warn, error, fatal).
	Level string `mapstructure:"level" json:"level" yaml:"level" toml:"level"`

	// Format is the log format (json or console).
	Format string `mapstructure:"format" json:"format" yaml:"format" toml:"format"`

	// Prefix is prepended to each timestamp.
	Prefix string `mapstructure:"prefix" json:"prefix" yaml:"prefix" toml:"prefix"`

	// TimeFormat is the timestamp layout (Go time format).
	TimeFormat string `mapstructure:"time-format" json:"timeFormat" yaml:"time-format" toml:"time-format"`

	// LogInTerminal enables logging to stdout in addition to file.
	LogInTerminal bool `mapstructure:"log-in-terminal" json:"logInTerminal" yaml:"log-in-terminal" toml:"log-in-terminal"`

	// MaxAge is the maximum number of days to retain old log files.
	MaxAge int `mapstructure:"max-age" json:"maxAge" yaml:"max-age" toml:"max-age"`

	// MaxSize is the maximum size in megabytes before rotation.
	MaxSize int `mapstructure:"max-size" json:"maxSize" yaml:"max-size" toml:"max-size"`

	// MaxBackups is the maximum number of rotated files to retain.
	MaxBackups int `mapstructure:"max-backups" json:"maxBackups" yaml:"max-backups" toml:"max-backups"`

	// Compress gzips rotated files.
	Compress bool `mapstructure:"compress" json:"compress" yaml:"compress" toml:"compress"`

	// ShowLineNumber adds caller information to log entries.
	ShowLineNumber bool `mapstructure:"show-line-number" json:"showLineNumber" yaml:"show-line-number" toml:"show-line-number"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Director:       "logs",
		Level:          "info",
		Format:         "json",
		TimeFormat:     "2006/01/02 - 15:04:05",
		LogInTerminal:  true,
		MaxAge:         7,
		MaxSize:        100,
		MaxBackups:     10,
		Compress:       true,
		ShowLineNumber: true,
	}
}

// TransportLevel converts the string level to zapcore.Level.
func (c Config) TransportLevel() zapcore.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// applyDefaults applies default values to empty fields.
func (c *Config) applyDefaults() {
	d := DefaultConfig()

	if c.Director == "" {
		c.Director = d.Director
	}
	if c.Level == "" {
		c.Level = d.Level
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	if c.TimeFormat == "" {
		c.TimeFormat = d.TimeFormat
	}
	if c.MaxAge == 0 {
		c.MaxAge = d.MaxAge
	}
	if c.MaxSize == 0 {
		c.MaxSize = d.MaxSize
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = d.MaxBackups
	}
}
