package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/leeforge/interchange/decode"
	"github.com/leeforge/interchange/encode"
	"github.com/leeforge/interchange/logging"
)

// Settings is the file-loadable configuration of an application embedding
// the interchange layer. The engines themselves take functional options;
// Settings is the bridge from a config file to those options.
type Settings struct {
	Logging logging.Config `mapstructure:"logging" json:"logging" yaml:"logging" toml:"logging"`
	Decode  DecodeSettings `mapstructure:"decode" json:"decode" yaml:"decode" toml:"decode"`
	Encode  EncodeSettings `mapstructure:"encode" json:"encode" yaml:"encode" toml:"encode"`
}

// DecodeSettings tunes the decode engine.
type DecodeSettings struct {
	// MaxDepth caps the nesting depth accepted from input JSON.
	MaxDepth int `mapstructure:"max-depth" json:"maxDepth" yaml:"max-depth" toml:"max-depth" default:"10000"`
}

// EncodeSettings tunes the encode engine.
type EncodeSettings struct {
	// Indent is the number of spaces per nesting level; 0 renders compact.
	Indent int `mapstructure:"indent" json:"indent" yaml:"indent" toml:"indent" default:"0"`

	// MaxDepth caps recursion depth while encoding.
	MaxDepth int `mapstructure:"max-depth" json:"maxDepth" yaml:"max-depth" toml:"max-depth" default:"10000"`
}

// DecodeOptions converts the settings into decode engine options.
func (s Settings) DecodeOptions() []decode.Option {
	var opts []decode.Option
	if s.Decode.MaxDepth > 0 {
		opts = append(opts, decode.WithMaxDepth(s.Decode.MaxDepth))
	}
	return opts
}

// EncodeOptions converts the settings into encode engine options.
func (s Settings) EncodeOptions() []encode.Option {
	var opts []encode.Option
	if s.Encode.MaxDepth > 0 {
		opts = append(opts, encode.WithMaxDepth(s.Encode.MaxDepth))
	}
	if s.Encode.Indent > 0 {
		opts = append(opts, encode.WithIndent(s.Encode.Indent))
	}
	return opts
}

// Options controls where and how settings are loaded.
type Options struct {
	BasePath  string
	FileName  string
	FileType  string
	EnvPrefix string
	WatchAble bool
	OnChange  func(e fsnotify.Event)
}

// Loader reads Settings from a config file through viper.
type Loader struct {
	instance   *viper.Viper
	opts       Options
	watchOnce  sync.Once
	watchMutex sync.RWMutex
}
