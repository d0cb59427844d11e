package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxLoggerKey struct{}

// ContextWithLogger returns a child context carrying l. Downstream code
// retrieves it with FromContext or L.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, l)
}

// FromContext returns the logger carried by ctx. Contexts without one
// get the process-wide logger, so call sites never need a nil check.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.L()
}

// L is shorthand for FromContext
func L(ctx context.Context) *zap.Logger {
	return FromContext(ctx)
}

// With returns a child context whose logger carries the extra fields.
// Useful for stamping a request ID once and logging it everywhere below.
func With(ctx context.Context, fields ...zap.Field) context.Context {
	return ContextWithLogger(ctx, FromContext(ctx).With(fields...))
}

// Sugar returns the context's logger in sugared form
func Sugar(ctx context.Context) *zap.SugaredLogger {
	return FromContext(ctx).Sugar()
}
