// Package logger provides structured logging for kvcli.
//
//   - logger.go: slog-backed Logger built from the log.* settings
//   - context.go: the logger and current command carried in a context
//   - redact.go: masking of passwords and bearer tokens
//
// Logs are diagnostics for the operator and go to stderr; they never
// replace the console messages the interactive commands print. There is
// no global logger: code logs through L(ctx), and a context that carries
// none discards.
package logger
