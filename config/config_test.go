package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoFilePresentReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.Color)
	assert.False(t, cfg.TraceResolver)
}

func TestLoad_ProjectFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	require.NoError(t, os.WriteFile(filepath.Join(dir, projectFile), []byte("color: false\ntrace_resolver: true\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Color)
	assert.False(t, *cfg.Color)
	assert.True(t, cfg.TraceResolver)
}

func TestLoad_MalformedProjectFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	require.NoError(t, os.WriteFile(filepath.Join(dir, projectFile), []byte("color: [this is not a bool\n"), 0644))

	_, err := Load()
	require.Error(t, err)
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(prev) }
}
