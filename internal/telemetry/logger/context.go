package logger

import "context"

type contextKey int

const (
	loggerKey contextKey = iota
	commandKey
)

// WithLogger stores the run's logger in ctx.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// WithCommand tags every log line written under ctx with the
// interactive command in progress (upload, delete...).
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// L returns the logger stored in ctx, tagged with the current command.
// A context without a logger logs nothing.
func L(ctx context.Context) Logger {
	l, ok := ctx.Value(loggerKey).(Logger)
	if !ok {
		l = Discard()
	}
	if name, ok := ctx.Value(commandKey).(string); ok && name != "" {
		l = l.With("command", name)
	}
	return l
}
