package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger builds an observer-backed logger at debug level. Tests
// assert against the returned ObservedLogs instead of parsing output.
func TestLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

// TestContext is TestLogger wrapped into a context, ready to pass to
// code that logs via L(ctx)
func TestContext() (context.Context, *observer.ObservedLogs) {
	l, logs := TestLogger()
	return ContextWithLogger(context.Background(), l), logs
}

// NopContext returns a context whose logger discards everything
func NopContext() context.Context {
	return ContextWithLogger(context.Background(), zap.NewNop())
}
