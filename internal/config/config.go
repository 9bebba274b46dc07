package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is looked up inside the data directory.
const ConfigFileName = "config.toml"

// Config holds all application configuration.
type Config struct {
	Data    DataConfig   `toml:"data"`
	Search  SearchConfig `toml:"search"`
	Tabs    TabsConfig   `toml:"tabs"`
	Styles  StylesConfig `toml:"styles"`
	Logging LogConfig    `toml:"logging"`
}

// DataConfig holds the data directory and persisted file names.
type DataConfig struct {
	Dir           string `toml:"dir" envconfig:"DATA_DIR"`
	BookmarksFile string `toml:"bookmarks_file" envconfig:"BOOKMARKS_FILE"`
	SessionFile   string `toml:"session_file" envconfig:"SESSION_FILE"`
	UserCSSFile   string `toml:"usercss_file" envconfig:"USERCSS_FILE"`
}

// SearchConfig holds the search-engine template used for address input
// that does not look like a URL. The query replaces the %s verb.
type SearchConfig struct {
	Template string `toml:"template" envconfig:"SEARCH_TEMPLATE"`
}

// TabsConfig holds tab-strip presentation settings.
type TabsConfig struct {
	// TitleWidth bounds the tab handle label; longer titles are truncated
	// with a trailing ellipsis.
	TitleWidth int `toml:"title_width" envconfig:"TAB_TITLE_WIDTH"`
}

// StylesConfig holds the user stylesheet persistence policy.
type StylesConfig struct {
	// Persist writes edited CSS to the user stylesheet file; when false the
	// edited CSS lives only for the process lifetime.
	Persist bool `toml:"persist" envconfig:"STYLES_PERSIST"`
	// LiveReload re-applies the stylesheet when the file changes on disk.
	// Only meaningful together with Persist.
	LiveReload bool `toml:"live_reload" envconfig:"STYLES_LIVE_RELOAD"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `toml:"level" envconfig:"LOG_LEVEL"`
	Development bool   `toml:"development" envconfig:"LOG_DEV"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:           defaultDataDir(),
			BookmarksFile: "bookmarks.json",
			SessionFile:   "session.json",
			UserCSSFile:   "userstyle.css",
		},
		Search: SearchConfig{
			Template: "https://www.google.com/search?q=%s",
		},
		Tabs: TabsConfig{
			TitleWidth: 30,
		},
		Styles: StylesConfig{
			Persist:    true,
			LiveReload: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Load builds the configuration from defaults, the optional config.toml in
// the data directory and FLINT_* environment overrides, in that order.
func Load() (*Config, error) {
	cfg := Default()

	// The data dir can itself be moved by the environment, so resolve it
	// before looking for the config file.
	if dir := os.Getenv("FLINT_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}

	if err := loadFile(filepath.Join(cfg.Data.Dir, ConfigFileName), cfg); err != nil {
		return nil, err
	}

	if err := envconfig.Process("flint", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration or returns defaults when loading fails.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// loadFile decodes a TOML config file over cfg. A missing file is fine;
// a present but malformed file is an error worth reporting.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// EnsureDataDir creates the data directory if it does not exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.Data.Dir, 0o755)
}

// BookmarksPath returns the absolute path of the bookmarks document.
func (c *Config) BookmarksPath() string {
	return filepath.Join(c.Data.Dir, c.Data.BookmarksFile)
}

// SessionPath returns the absolute path of the session document.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Data.Dir, c.Data.SessionFile)
}

// UserCSSPath returns the absolute path of the user stylesheet.
func (c *Config) UserCSSPath() string {
	return filepath.Join(c.Data.Dir, c.Data.UserCSSFile)
}

// defaultDataDir resolves the per-user application data directory.
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".flint"
	}
	return filepath.Join(base, "flint")
}
