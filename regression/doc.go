// Package regression fits a size-prediction curve over compressed mosaic
// columns, for capacity planning rather than compression itself.
//
// It analyzes the relationship between a column's row count and its
// compressed bytes-per-row. column.SizeCurve produces the (rows, bytes)
// samples by re-compressing prefixes of a representative column at
// SampleRowCounts' row counts; Analyze fits several candidate models to
// that curve and selects the best by R².
//
// # Usage
//
//	samples, err := column.SizeCurve(kit, values, regression.WithPersist(persist.Zstd))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := regression.Analyze(samples)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	estimator := result.BestFit.Estimator
//	bytesPerRow := estimator.Estimate(1_000_000) // predicted BPR at 1M rows
//
// # Model Types
//
//   - Hyperbolic: bytesPerRow = a + b/rows
//   - Logarithmic: bytesPerRow = a + b*ln(rows)
//   - Power: bytesPerRow = a*rows^b
//   - Exponential: bytesPerRow = a*e^(b*rows)
//   - Polynomial: bytesPerRow = a + b*rows + c*rows^2
//
// The best-fit model is the one with the highest R² across these five.
//
// # Production Use Cases
//
//   - Storage planning: predict on-disk size for a table before loading it
//   - Configuration tuning: compare method masks or persist algorithms by
//     their fitted curves rather than by eyeballing one sample size
//   - Drift detection: re-fit periodically and watch the formula move as
//     a column's value distribution changes
package regression
