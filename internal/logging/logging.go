// Package logging configures the zap loggers used across mpnkit.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/standardbeagle/mpnkit/internal/errors"
)

var (
	// Logger is the process-wide sugared logger. It is a no-op until Initialize runs so
	// library callers never pay for logging they did not ask for.
	Logger *zap.SugaredLogger
)

func init() {
	Logger = zap.NewNop().Sugar()
}

// Config selects level and encoding.
type Config struct {
	Level       string `json:"level" toml:"level"`
	Format      string `json:"format" toml:"format"` // "json" or "console"
	OutputPath  string `json:"output_path" toml:"output_path"`
	Development bool   `json:"development" toml:"development"`
}

// DefaultConfig logs warnings and above to stderr in console format.
func DefaultConfig() Config {
	return Config{Level: "warn", Format: "console", OutputPath: "stderr"}
}

// New builds a logger from cfg. An unknown level is an error rather than a silent
// fallback so a typo in a config file is reported.
func New(cfg Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level := cfg.Level
	if level == "" {
		level = "warn"
	}
	atomic, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return nil, errors.NewConfigError("logging.level", cfg.Level, err)
	}
	zapConfig.Level = atomic

	switch strings.ToLower(cfg.Format) {
	case "", "console":
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		zapConfig.Encoding = "json"
	default:
		return nil, errors.NewConfigError("logging.format", cfg.Format, errors.New("expected json or console"))
	}

	out := cfg.OutputPath
	if out == "" {
		out = "stderr"
	}
	zapConfig.OutputPaths = []string{out}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}

// Initialize replaces the package logger.
func Initialize(cfg Config) (*zap.Logger, error) {
	logger, err := New(cfg)
	if err != nil {
		return nil, err
	}
	Logger = logger.Sugar()
	return logger, nil
}

// Cleanup flushes buffered entries.
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
