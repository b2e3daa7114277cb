package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON production logger, or a console logger in
// development mode. Output goes to stderr unless a file is configured.
func NewLogger(lc LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	out := "stderr"
	if lc.File != "" {
		out = ExpandHome(lc.File)
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{out}

	return zc.Build()
}

// NewQuietLogger is used by the terminal UI: it logs to the configured file,
// or nowhere, so output never lands on the screen.
func NewQuietLogger(lc LogConfig) (*zap.Logger, error) {
	if lc.File == "" {
		return zap.NewNop(), nil
	}
	return NewLogger(lc)
}
