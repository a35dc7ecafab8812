// Package logging builds the structured zap logger used across the CLI.
package logging

import (
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Formats lists the accepted log encodings.
//
//nolint:gochecknoglobals // Config constant
var Formats = []string{"console", "json"}

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // console, json
	OutputPath string // stderr, stdout, or file path
	// Writer, when set, receives log output instead of OutputPath.
	Writer io.Writer
}

// New builds a logger from cfg. Unknown levels fall back to warn so that only
// anomalies reach the terminal by default.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level = zapcore.WarnLevel
		}
	}

	if cfg.Format == "" {
		cfg.Format = "console"
	}

	if !slices.Contains(Formats, cfg.Format) {
		return nil, fmt.Errorf("invalid log format %q: must be one of %v", cfg.Format, Formats)
	}

	var config zap.Config
	if cfg.Format == "console" {
		config = zap.NewDevelopmentConfig()
		config.DisableStacktrace = true
		config.DisableCaller = level != zapcore.DebugLevel
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	config.Level = zap.NewAtomicLevelAt(level)

	if cfg.Writer != nil {
		encoder := zapcore.NewJSONEncoder(config.EncoderConfig)
		if cfg.Format == "console" {
			encoder = zapcore.NewConsoleEncoder(config.EncoderConfig)
		}

		return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(cfg.Writer), config.Level)), nil
	}

	output := cfg.OutputPath
	if output == "" {
		output = "stderr"
	}

	config.OutputPaths = []string{output}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return logger, nil
}

// Level returns the level name for the debug toggle.
func Level(debug bool) string {
	if debug {
		return "debug"
	}

	return "warn"
}
