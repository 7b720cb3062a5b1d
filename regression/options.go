package regression

import (
	"github.com/colmosaic/mosaic/internal/options"
	"github.com/colmosaic/mosaic/persist"
	"github.com/colmosaic/mosaic/plan"
)

// AnalyzeConfig controls how column.SizeCurve re-compresses a column's
// prefixes when building samples for Analyze.
type AnalyzeConfig struct {
	PlanOptions []plan.Option
	Persist     persist.Algorithm
}

func defaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{Persist: persist.None}
}

// NewAnalyzeConfig builds an AnalyzeConfig from functional options, for
// callers (like column.SizeCurve) that need the resolved config rather
// than applying options themselves.
func NewAnalyzeConfig(opts ...AnalyzeOption) (AnalyzeConfig, error) {
	cfg := defaultAnalyzeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return AnalyzeConfig{}, err
	}

	return cfg, nil
}

// AnalyzeOption is a functional option for AnalyzeConfig.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithPlanOptions forwards planner options (method mask, dictionary caps)
// to every SizeCurve sample compression.
func WithPlanOptions(opts ...plan.Option) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.PlanOptions = opts
	})
}

// WithPersist measures sizes after applying the given heap-compression
// algorithm on top of each compressed prefix, for curve-fitting the
// end-to-end on-disk size rather than just the mosaic encoding.
func WithPersist(algo persist.Algorithm) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.Persist = algo
	})
}
