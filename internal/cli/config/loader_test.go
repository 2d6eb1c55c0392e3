package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skyjson/skyjson/pkg/arena"
	"github.com/skyjson/skyjson/pkg/json"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("arena-capacity", arena.DefaultCapacity, "")
	fs.Int("max-depth", json.DefaultMaxDepth, "")
	fs.String("log-level", "", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, arena.DefaultCapacity, cfg.Arena.Capacity)
	assert.Equal(t, json.DefaultMaxDepth, cfg.Parser.MaxDepth)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
arena:
  capacity: 65536
parser:
  max_depth: 32
log:
  level: debug
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 65536, cfg.Arena.Capacity)
	assert.Equal(t, 32, cfg.Parser.MaxDepth)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, "parser:\n  max_depth: 16\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Parser.MaxDepth)
	assert.Equal(t, arena.DefaultCapacity, cfg.Arena.Capacity)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "log:\n  level: warn\n")
	t.Setenv("SKYJSON_LOG_LEVEL", "error")
	t.Setenv("SKYJSON_PARSER_MAX_DEPTH", "20")
	t.Setenv("SKYJSON_UNRELATED", "ignored")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 20, cfg.Parser.MaxDepth)
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	t.Setenv("SKYJSON_ARENA_CAPACITY", "1024")

	fs := newFlagSet()
	require.NoError(t, fs.Set("arena-capacity", "2048"))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.Arena.Capacity)
}

func TestLoadUnchangedFlagDoesNotOverride(t *testing.T) {
	t.Setenv("SKYJSON_ARENA_CAPACITY", "1024")

	cfg, err := Load("", newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Arena.Capacity)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"zero capacity", "arena:\n  capacity: 0\n", "arena.capacity"},
		{"zero depth", "parser:\n  max_depth: 0\n", "parser.max_depth"},
		{"bad level", "log:\n  level: verbose\n", "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			_, err := Load(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
