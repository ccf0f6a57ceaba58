// Package logging builds the process logger. One construction path for
// the CLI and the tests, so verbosity handling stays in one place.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production-configured logger. verbose lowers the level
// to debug, which also enables the engine's per-rule evaluation traces.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

// Sync flushes buffered entries. Safe on nil; sync errors on shutdown
// are ignored, matching the usual stderr-sink behavior.
func Sync(log *zap.Logger) {
	if log != nil {
		_ = log.Sync()
	}
}
