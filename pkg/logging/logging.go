// Package logging builds the zap logger shared by the commands.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when the configured level is blank.
const DefaultLevel = "warn"

// New returns a production zap logger at level. verbose forces debug. When
// outputs is empty logs go to stderr.
func New(level string, verbose bool, outputs ...string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	config.Level = lvl
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if len(outputs) > 0 {
		config.OutputPaths = outputs
		config.ErrorOutputPaths = outputs
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

// Nop is the logger used before the commands configure one.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
