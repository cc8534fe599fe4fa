package engine

import (
	"go.uber.org/zap"

	"github.com/standardbeagle/mpnkit/internal/config"
	"github.com/standardbeagle/mpnkit/internal/metrics"
)

// Option configures an Engine at construction.
type Option func(*options)

type options struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// WithConfig builds the engine from cfg instead of the defaults. The config is
// copied and validated; the caller's value is not modified.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger sets the logger for build and dispatch diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records classifications, comparisons and verdicts into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}
