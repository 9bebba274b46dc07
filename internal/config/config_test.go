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

	assert.Equal(t, "bookmarks.json", cfg.Data.BookmarksFile)
	assert.Equal(t, "session.json", cfg.Data.SessionFile)
	assert.Equal(t, "userstyle.css", cfg.Data.UserCSSFile)
	assert.Equal(t, "https://www.google.com/search?q=%s", cfg.Search.Template)
	assert.Equal(t, 30, cfg.Tabs.TitleWidth)
	assert.True(t, cfg.Styles.Persist)
	assert.NotEmpty(t, cfg.Data.Dir)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FLINT_DATA_DIR", dir)

	contents := `
[search]
template = "https://duckduckgo.com/?q=%s"

[tabs]
title_width = 24

[styles]
persist = false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(contents), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Data.Dir)
	assert.Equal(t, "https://duckduckgo.com/?q=%s", cfg.Search.Template)
	assert.Equal(t, 24, cfg.Tabs.TitleWidth)
	assert.False(t, cfg.Styles.Persist)
	// Untouched sections keep their defaults.
	assert.Equal(t, "bookmarks.json", cfg.Data.BookmarksFile)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FLINT_DATA_DIR", dir)
	t.Setenv("FLINT_SEARCH_TEMPLATE", "https://search.example/?q=%s")
	t.Setenv("FLINT_LOG_LEVEL", "debug")

	contents := `
[search]
template = "https://duckduckgo.com/?q=%s"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(contents), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://search.example/?q=%s", cfg.Search.Template)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FLINT_DATA_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("[broken"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	cfg := Default()
	cfg.Data.Dir = "/tmp/flint-test"

	assert.Equal(t, "/tmp/flint-test/bookmarks.json", cfg.BookmarksPath())
	assert.Equal(t, "/tmp/flint-test/session.json", cfg.SessionPath())
	assert.Equal(t, "/tmp/flint-test/userstyle.css", cfg.UserCSSPath())
}
