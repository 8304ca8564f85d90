// Package logger provides structured logging functionality for the application.
//
// It builds on Go's standard library log/slog package: JSON output for
// deployed environments and a colourised tint handler for local development,
// plus helpers for carrying a request-scoped logger through a context.
package logger
