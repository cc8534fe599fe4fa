package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/standardbeagle/mpnkit/internal/errors"
)

func TestDefaultLoggerIsNop(t *testing.T) {
	require.NotNil(t, Logger)
	assert.NotPanics(t, func() { Logger.Infow("ignored", "k", "v") })
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     Config
		level   zapcore.Level
		wantErr bool
	}{
		{"defaults", Config{OutputPath: filepath.Join(dir, "a.log")}, zap.WarnLevel, false},
		{"json debug", Config{Level: "debug", Format: "json", OutputPath: filepath.Join(dir, "b.log")}, zap.DebugLevel, false},
		{"upper-case level", Config{Level: "ERROR", OutputPath: filepath.Join(dir, "c.log")}, zap.ErrorLevel, false},
		{"development", Config{Level: "info", Development: true, OutputPath: filepath.Join(dir, "d.log")}, zap.InfoLevel, false},
		{"bad level", Config{Level: "loud"}, 0, true},
		{"bad format", Config{Format: "xml"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				var cfgErr *errors.ConfigError
				assert.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			if tt.level > zap.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.level-1))
			}
		})
	}
}

func TestInitializeReplacesPackageLogger(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	_, err := Initialize(Config{Level: "info", OutputPath: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	assert.NotSame(t, prev, Logger)
	Cleanup()
}
