// Package logging provides structured logging for macropad.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the entire application.
//
// # Features
//
//   - Text output for terminals (human-readable)
//   - JSON output for log collection (machine-parsable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # text, json
//	  output: "stderr"   # stderr, stdout, or a file path
//
// Stdout carries the interactive menus, so logs default to stderr. Point
// output at a file to keep long dispatch sessions from scrolling the
// terminal.
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("session started", "device", "FooPad")
//	logger.Error("trigger failed", "error", err)
package logging
