package column

import (
	"github.com/colmosaic/mosaic/persist"
	"github.com/colmosaic/mosaic/regression"
	"github.com/colmosaic/mosaic/typekit"
)

// SizeCurve compresses increasing prefixes of values (at regression.
// SampleRowCounts' row counts) and records the resulting byte size of
// each, for feeding regression.Analyze. It exists for capacity planning:
// predicting how a column's compressed size scales before committing a
// full table to it.
func SizeCurve[T typekit.Numeric](kit typekit.Kit[T], values []T, opts ...regression.AnalyzeOption) ([]regression.Sample, error) {
	cfg, err := regression.NewAnalyzeConfig(opts...)
	if err != nil {
		return nil, err
	}

	codec, err := persist.New(cfg.Persist)
	if err != nil {
		return nil, err
	}

	rowCounts := regression.SampleRowCounts(len(values))
	samples := make([]regression.Sample, 0, len(rowCounts))

	for _, n := range rowCounts {
		col, err := Compress(kit, values[:n], cfg.PlanOptions...)
		if err != nil {
			continue // no reduction at this prefix length: skip, not fatal
		}

		payload := col.Bytes()

		compressed, err := codec.Compress(payload)
		if err != nil {
			return nil, err
		}

		samples = append(samples, regression.Sample{Rows: n, Bytes: len(compressed)})
	}

	return samples, nil
}
