// Package logging provides structured logging utilities for cmdchain
// components.
//
// This package wraps the standard library slog package with module-specific
// defaults and conventions for consistent logging across all components. It
// supports environment-based log level configuration, module/version context
// injection, and automatic source location tracking for debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("cmdchain", "v1.0.0")
//
//	    slog.Info("surface compiled", "name", "start")
//	    slog.Debug("registry hit", "key", key)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("cmdchain", "v1.0.0", "debug")
//	logger.Info("chain serialized", "tokens", len(tokens))
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is given (DEBUG, INFO, WARN, ERROR; defaults to INFO). All logs are
// written to stderr in JSON format with module and version attributes.
package logging
