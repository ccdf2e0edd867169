// Package config loads interchange and logging settings for embedding
// applications from a config file, with live reload when watching is
// enabled.
package config

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/leeforge/interchange/logging"
)

// DefaultOptions returns loader options reading interchange.yaml from the
// CONFIG_PATH directory, falling back to ./config.
func DefaultOptions() Options {
	basePath := os.Getenv("CONFIG_PATH")
	if basePath == "" {
		basePath = "config"
	}

	return Options{
		BasePath:  basePath,
		FileName:  "interchange",
		FileType:  "yaml",
		EnvPrefix: "",
		WatchAble: false,
		OnChange:  nil,
	}
}

// New creates a Loader. A missing config file is not an error: binding then
// yields pure defaults.
func New(optsArr ...Options) (*Loader, error) {
	var opts Options
	if len(optsArr) == 0 {
		opts = DefaultOptions()
	} else {
		opts = optsArr[0]
	}

	v := viper.New()
	v.SetConfigName(opts.FileName)
	v.SetConfigType(opts.FileType)
	v.AddConfigPath(opts.BasePath)
	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
		v.AutomaticEnv()
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("read config (path: %s, file: %s.%s): %w",
				opts.BasePath, opts.FileName, opts.FileType, err)
		}
	}

	return &Loader{instance: v, opts: opts}, nil
}

// Bind unmarshals the loaded file into s, applying declared defaults before
// and after so absent keys keep their default values. When watching is
// enabled, s is re-bound on every file change.
func (l *Loader) Bind(s *Settings) error {
	if l == nil || l.instance == nil {
		return fmt.Errorf("config loader is nil")
	}
	if s == nil {
		return fmt.Errorf("target settings is nil")
	}

	l.watchMutex.Lock()
	defer l.watchMutex.Unlock()

	if err := defaults.Set(s); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}
	if err := l.instance.Unmarshal(s); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := defaults.Set(s); err != nil {
		return fmt.Errorf("apply defaults after unmarshal: %w", err)
	}

	if l.opts.WatchAble {
		l.watchOnce.Do(func() {
			l.instance.WatchConfig()
			l.instance.OnConfigChange(func(e fsnotify.Event) {
				l.watchMutex.Lock()
				defer l.watchMutex.Unlock()

				if err := l.instance.Unmarshal(s); err != nil {
					logging.Error("config reload failed", zap.Error(err))
					return
				}
				if l.opts.OnChange != nil {
					l.opts.OnChange(e)
				}
			})
		})
	}

	return nil
}

// Settings loads and binds in one step.
func (l *Loader) Settings() (Settings, error) {
	var s Settings
	if err := l.Bind(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
