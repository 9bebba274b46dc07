// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for human readability
//
// The shell never surfaces persistence or injection failures to the user,
// so the log is the only place those are recorded.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("tab opened", zap.String("url", url))
package logging
