// Package logger builds the CLI's zap logger. Logs go to stderr so they never
// mix with generated source on stdout.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity level constants for CLI flag counts.
const (
	VerbosityUser  = 0 // No flags: warnings and errors only
	VerbosityInfo  = 1 // -v: + startup, watched files, server address
	VerbosityDebug = 2 // -vv: + per-conversion timing and sizes
)

// VerbosityToLevel maps -v counts to zap levels.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// New returns a logger writing to stderr at the level selected by verbosity.
func New(verbosity int, jsonOutput bool) *zap.Logger {
	return NewWithWriter(os.Stderr, verbosity, jsonOutput)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, verbosity int, jsonOutput bool) *zap.Logger {
	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(minimalEncoderConfig())
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), VerbosityToLevel(verbosity))
	return zap.New(core)
}

// minimalEncoderConfig drops timestamps and callers for calm terminal output.
func minimalEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = ""
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return cfg
}
