package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fast", cfg.Parser.Mode)
	assert.Equal(t, "clingo", cfg.Solver.Binary)
	assert.False(t, cfg.Log.JSON)
}

func TestLoadIsCached(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestEnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("ASPEN_PARSER_MODE", "careful")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "careful", cfg.Parser.Mode)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aspen.toml")
	content := "[parser]\nmode = \"careful\"\n\n[solver]\nbinary = \"/opt/clingo\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "careful", cfg.Parser.Mode)
	assert.Equal(t, "/opt/clingo", cfg.Solver.Binary)
	// Unset keys keep their defaults.
	assert.False(t, cfg.Log.JSON)
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
