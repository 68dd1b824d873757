// Package logging provides structured logging utilities for the NASA explorer
// proxy.
//
// It wraps log/slog with JSON output to stderr, module and version attributes
// on every record, and LOG_LEVEL driven verbosity. Debug level also records
// the source location.
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("nasad", version)
//	    slog.Info("server starting", "port", 5000)
//	}
//
// An explicit level overrides LOG_LEVEL:
//
//	logging.SetDefaultStructuredLoggerWithLevel("nasad", version, "debug")
//
// Supported levels (case-insensitive): debug, info (default), warn/warning,
// error. Unknown values fall back to info.
//
// http.Server.ErrorLog can be routed through slog:
//
//	srv.ErrorLog = logging.NewLogLogger(slog.LevelError, false)
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "cache hit",
//	    "module": "nasad",
//	    "version": "v1.0.0",
//	    "key": "/api/nasa/apod?date=2024-01-01"
//	}
package logging
