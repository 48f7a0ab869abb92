package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "worldforge", cfg.Name)
	assert.Equal(t, "generated", cfg.Generator.OutputRoot)
	assert.Equal(t, "worlddata", cfg.Generator.MirrorRoot)
	assert.Equal(t, 200.0, cfg.Layout.NPCSpacing)
	assert.Equal(t, 5, cfg.Layout.GridColumns)
	assert.Equal(t, 50, cfg.Sanitizer.MaxLength)
	assert.False(t, cfg.Logging.DebugMode)

	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Generator, cfg.Generator)
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
generator:
  output_root: /tmp/out
  mirror_root: /tmp/mirror
layout:
  npc_spacing: 150
  grid_columns: 3
  quest_spacing: 300
  quest_lane_offset: -400
  quest_marker_height: 150
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", cfg.Generator.OutputRoot)
	assert.Equal(t, "/tmp/mirror", cfg.Generator.MirrorRoot)
	assert.Equal(t, 150.0, cfg.Layout.NPCSpacing)
	assert.Equal(t, 3, cfg.Layout.GridColumns)
	// Unspecified sections keep defaults.
	assert.Equal(t, 50, cfg.Sanitizer.MaxLength)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator: [not a mapping"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("FORGE_OUTPUT_ROOT overrides output root", func(t *testing.T) {
		t.Setenv("FORGE_OUTPUT_ROOT", "/env/out")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/env/out", cfg.Generator.OutputRoot)
	})

	t.Run("FORGE_MIRROR_ROOT overrides mirror root", func(t *testing.T) {
		t.Setenv("FORGE_MIRROR_ROOT", "/env/mirror")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/env/mirror", cfg.Generator.MirrorRoot)
	})

	t.Run("FORGE_DB_PATH overrides database path", func(t *testing.T) {
		t.Setenv("FORGE_DB_PATH", "/env/worlds.db")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/env/worlds.db", cfg.Store.DatabasePath)
	})

	t.Run("FORGE_DEBUG enables debug logging", func(t *testing.T) {
		t.Setenv("FORGE_DEBUG", "true")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
	})

	t.Run("empty env vars change nothing", func(t *testing.T) {
		t.Setenv("FORGE_OUTPUT_ROOT", "")
		t.Setenv("FORGE_DEBUG", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "generated", cfg.Generator.OutputRoot)
		assert.False(t, cfg.Logging.DebugMode)
	})
}

func TestValidate(t *testing.T) {
	t.Run("mirror equal to output rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Generator.MirrorRoot = cfg.Generator.OutputRoot
		assert.Error(t, cfg.Validate())
	})

	t.Run("mirror nested under output rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Generator.OutputRoot = "generated"
		cfg.Generator.MirrorRoot = filepath.Join("generated", "mirror")
		assert.Error(t, cfg.Validate())
	})

	t.Run("mirror aliasing output via dot segments rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Generator.OutputRoot = "generated"
		cfg.Generator.MirrorRoot = "./generated"
		assert.Error(t, cfg.Validate())
	})

	t.Run("sibling with shared name prefix allowed", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Generator.OutputRoot = "generated"
		cfg.Generator.MirrorRoot = "generated-mirror"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("output nested under mirror allowed", func(t *testing.T) {
		// Containment only matters one way: the output tree is what
		// gets scanned, the mirror just has to stay out of it.
		cfg := DefaultConfig()
		cfg.Generator.OutputRoot = filepath.Join("worlddata", "out")
		cfg.Generator.MirrorRoot = "worlddata"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("non-positive spacing rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Layout.NPCSpacing = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty output root rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Generator.OutputRoot = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Generator.OutputRoot = "/somewhere/out"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/somewhere/out", loaded.Generator.OutputRoot)
	assert.Equal(t, cfg.Layout, loaded.Layout)
}
