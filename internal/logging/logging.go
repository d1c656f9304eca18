// Package logging builds the application's zap logger. Commands that own
// the terminal log to a file; --verbose logs to stderr instead.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects where and how much to log.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string

	// File is the JSON log destination. Empty uses DefaultLogPath.
	File string

	// Verbose logs human-readable lines to stderr at debug level.
	Verbose bool
}

// DefaultConfig returns info-level file logging.
func DefaultConfig() Config {
	return Config{Level: "info"}
}

// ConfigFromEnv reads STUDYPLAN_LOG_LEVEL and STUDYPLAN_LOG_FILE.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("STUDYPLAN_LOG_LEVEL"); v != "" {
		cfg.Level = strings.ToLower(strings.TrimSpace(v))
	}
	cfg.File = os.Getenv("STUDYPLAN_LOG_FILE")
	return cfg
}

// DefaultLogPath returns $XDG_STATE_HOME/studyplan/studyplan.log, falling
// back to ~/.local/state.
func DefaultLogPath() (string, error) {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "studyplan", "studyplan.log"), nil
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Verbose {
		zc := zap.NewDevelopmentConfig()
		zc.OutputPaths = []string{"stderr"}
		zc.ErrorOutputPaths = []string{"stderr"}
		return zc.Build()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	path := cfg.File
	if path == "" {
		if path, err = DefaultLogPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

// NewOrNop returns New(cfg), or a no-op logger and the error when the
// logger cannot be built. Logging is never a reason to fail a command.
func NewOrNop(cfg Config) (*zap.Logger, error) {
	l, err := New(cfg)
	if err != nil {
		return zap.NewNop(), err
	}
	return l, nil
}
