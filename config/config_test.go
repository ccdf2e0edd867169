package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "interchange.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return dir
}

func TestBindReadsFile(t *testing.T) {
	dir := writeConfigFile(t, `
logging:
  level: debug
  director: /tmp/interchange-logs
decode:
  max-depth: 64
encode:
  indent: 2
`)

	loader, err := New(Options{BasePath: dir, FileName: "interchange", FileType: "yaml"})
	require.NoError(t, err)

	settings, err := loader.Settings()
	require.NoError(t, err)
	require.Equal(t, "debug", settings.Logging.Level)
	require.Equal(t, "/tmp/interchange-logs", settings.Logging.Director)
	require.Equal(t, 64, settings.Decode.MaxDepth)
	require.Equal(t, 2, settings.Encode.Indent)
	require.Equal(t, 10000, settings.Encode.MaxDepth, "absent keys fall back to defaults")
}

func TestBindMissingFileYieldsDefaults(t *testing.T) {
	loader, err := New(Options{BasePath: t.TempDir(), FileName: "interchange", FileType: "yaml"})
	require.NoError(t, err)

	settings, err := loader.Settings()
	require.NoError(t, err)
	require.Equal(t, 10000, settings.Decode.MaxDepth)
	require.Equal(t, 0, settings.Encode.Indent)
}

func TestSettingsBridgeToOptions(t *testing.T) {
	var s Settings
	s.Decode.MaxDepth = 8
	s.Encode.MaxDepth = 8
	s.Encode.Indent = 2

	require.Len(t, s.DecodeOptions(), 1)
	require.Len(t, s.EncodeOptions(), 2)

	s.Encode.Indent = 0
	require.Len(t, s.EncodeOptions(), 1)
}

func TestBindRejectsNilTarget(t *testing.T) {
	loader, err := New(Options{BasePath: t.TempDir(), FileName: "interchange", FileType: "yaml"})
	require.NoError(t, err)
	require.Error(t, loader.Bind(nil))

	var nilLoader *Loader
	require.Error(t, nilLoader.Bind(&Settings{}))
}
