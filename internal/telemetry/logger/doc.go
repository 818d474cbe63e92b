// Package logger provides structured logging for shopctl.
//
// It wraps log/slog behind a small Logger interface:
//
//   - logger.go: handler construction, levels, the process-wide default
//   - context.go: context-carried logger and request ids
//   - redact.go: masking of bearer credentials and secret-looking fields
//
// A Nop logger is provided for call sites whose output is switched off,
// such as request diagnostics outside development mode.
package logger
