package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("omit_symlinks: true\nlog_level: debug\n"), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.OmitSymlinks)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.False(t, cfg.OmitSymlinks)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("omit_symlinks: [oops"), 0o644))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logDebug, parseLogLevel("debug"))
	assert.Equal(t, logDebug, parseLogLevel(" Verbose "))
	assert.Equal(t, logOff, parseLogLevel(""))
	assert.Equal(t, logOff, parseLogLevel("off"))
}
