package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, LevelIntermediate, cfg.ExplanationLevel)
	assert.True(t, cfg.IncludeVerification)
	assert.True(t, cfg.IncludeErrorPrevention)
	assert.True(t, cfg.IncludeBridges)
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Enhanced())
	assert.False(t, cfg.Scaffolded())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.ExplanationLevel = "expert"
	assert.Error(t, cfg.Validate())

	cfg.ExplanationLevel = LevelBasic
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.Enhanced())
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("explanation_level: Scaffolded\ninclude_bridges: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LevelScaffolded, cfg.ExplanationLevel)
	assert.False(t, cfg.IncludeBridges)
	assert.True(t, cfg.IncludeVerification, "keys absent from the file keep defaults")
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("explanation_lvl: basic\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err, "unknown keys are rejected")

	require.NoError(t, os.WriteFile(path, []byte("explanation_level: expert\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("explanation_level: basic\n"), 0o644))

	t.Setenv("WORKBOOK_EXPLANATION_LEVEL", "detailed")
	t.Setenv("WORKBOOK_INCLUDE_VERIFICATION", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LevelDetailed, cfg.ExplanationLevel)
	assert.False(t, cfg.IncludeVerification)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	t.Setenv("WORKBOOK_INCLUDE_BRIDGES", "sometimes")
	cfg := Default()
	assert.Error(t, cfg.ApplyEnv())

	t.Setenv("WORKBOOK_INCLUDE_BRIDGES", "")
	t.Setenv("WORKBOOK_EXPLANATION_LEVEL", "expert")
	assert.Error(t, cfg.ApplyEnv())
}
