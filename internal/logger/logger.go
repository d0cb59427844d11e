package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init installs the global logger with the specified verbosity.
// Verbose enables debug-level output; otherwise only warnings and
// errors are emitted so command output stays clean.
func Init(verbose bool) {
	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}

	zap.ReplaceGlobals(logger)
}

// Close flushes any buffered log entries
func Close() {
	_ = zap.L().Sync()
}
