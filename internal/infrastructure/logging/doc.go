// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Example Usage:
//
//	logger := logging.FromLevel("info", false)
//	logger.Info("Server starting", zap.String("port", "3001"))
//	logger.Error("Failed to fetch", zap.Error(err))
package logging
