// Package mosaic provides an adaptive, mixed-method compression engine for
// numeric columns in an analytical database, wrapping typekit, dict, codec,
// plan, format, scan, column, persist, and regression into the handful of
// entry points most callers need.
//
// # Core Features
//
//   - Eight column-encoding methods (Raw, RLE, Dict, Dict256, Delta, Linear,
//     Frame, Prefix), chosen per block by a cost-driven planner rather than
//     fixed per-column
//   - Decode-on-demand range/theta select, project, and join without fully
//     materializing a column
//   - A second, independent heap-compression layer (None, Zstd, S2, LZ4) for
//     transport/storage, orthogonal to the column-encoding methods
//   - Regression-based size-curve fitting for capacity planning
//
// # Basic Usage
//
// Compressing and scanning an int64 column:
//
//	import "github.com/colmosaic/mosaic"
//
//	col, err := mosaic.CompressInt64(values)
//	if err != nil {
//	    // errs.ErrNoReduction means values didn't compress smaller; keep
//	    // the plain slice instead of a Column in that case.
//	    log.Fatal(err)
//	}
//
//	hits := col.Engine().ThetaSelect(scan.ThetaGE, 100, codec.NewDenseRange(0, col.Len()))
//
// Persisting a column to a heap buffer and reloading it:
//
//	data := col.Bytes()
//	reloaded, err := mosaic.LoadInt64(data, col.Len())
package mosaic

import (
	"github.com/colmosaic/mosaic/column"
	"github.com/colmosaic/mosaic/plan"
	"github.com/colmosaic/mosaic/typekit"
)

// CompressInt8/16/32/64 and CompressFloat32/64 are thin convenience
// wrappers around column.Compress for callers that don't need a custom
// typekit.Kit. Advanced callers (custom method masks, dictionary caps)
// should call column.Compress directly with typekit's Kit constructors.

func CompressInt8(values []int8, opts ...plan.Option) (*column.Column[int8], error) {
	return column.Compress(typekit.Int8Kit(), values, opts...)
}

func CompressInt16(values []int16, opts ...plan.Option) (*column.Column[int16], error) {
	return column.Compress(typekit.Int16Kit(), values, opts...)
}

func CompressInt32(values []int32, opts ...plan.Option) (*column.Column[int32], error) {
	return column.Compress(typekit.Int32Kit(), values, opts...)
}

func CompressInt64(values []int64, opts ...plan.Option) (*column.Column[int64], error) {
	return column.Compress(typekit.Int64Kit(), values, opts...)
}

func CompressFloat32(values []float32, opts ...plan.Option) (*column.Column[float32], error) {
	return column.Compress(typekit.Float32Kit(), values, opts...)
}

func CompressFloat64(values []float64, opts ...plan.Option) (*column.Column[float64], error) {
	return column.Compress(typekit.Float64Kit(), values, opts...)
}

// LoadInt8/16/32/64 and LoadFloat32/64 reverse the Compress* wrappers,
// reconstructing a Column from a buffer written by Column.Bytes.

func LoadInt8(data []byte, n int64) (*column.Column[int8], error) {
	return column.Load(typekit.Int8Kit(), data, n)
}

func LoadInt16(data []byte, n int64) (*column.Column[int16], error) {
	return column.Load(typekit.Int16Kit(), data, n)
}

func LoadInt32(data []byte, n int64) (*column.Column[int32], error) {
	return column.Load(typekit.Int32Kit(), data, n)
}

func LoadInt64(data []byte, n int64) (*column.Column[int64], error) {
	return column.Load(typekit.Int64Kit(), data, n)
}

func LoadFloat32(data []byte, n int64) (*column.Column[float32], error) {
	return column.Load(typekit.Float32Kit(), data, n)
}

func LoadFloat64(data []byte, n int64) (*column.Column[float64], error) {
	return column.Load(typekit.Float64Kit(), data, n)
}
