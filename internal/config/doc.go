// Package config provides configuration for the browser shell.
//
// One Config struct is built once at startup and passed by pointer to every
// component that needs it; there is no ambient global state. Sources, in
// increasing precedence:
//   - Default(): compiled-in defaults
//   - config.toml in the data directory (optional)
//   - environment variables with the FLINT prefix
//
// Configuration Sections:
//   - Data: data directory and persisted file names
//   - Search: search-engine URL template for non-URL address input
//   - Tabs: tab-strip presentation settings
//   - Styles: user stylesheet persistence policy
//   - Logging: log level and output format
//
// Environment Variables:
//   - FLINT_DATA_DIR
//   - FLINT_SEARCH_TEMPLATE
//   - FLINT_TAB_TITLE_WIDTH
//   - FLINT_STYLES_PERSIST, FLINT_STYLES_LIVE_RELOAD
//   - FLINT_LOG_LEVEL, FLINT_LOG_DEV
package config
