package codec

import (
	"github.com/colmosaic/mosaic/dict"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// InitialMaxCnt is the normalised-cost metric's starting anchor for
// max_cnt before any block has been emitted. This constant is
// arbitrary by design; colmosaic uses 100, a round number large enough
// that the first block's cost isn't distorted by a tiny max_cnt. See
// DESIGN.md.
const InitialMaxCnt = 100

// EstimateState carries the per-column, cross-block state Pass A threads
// through every method's Estimate call: the shared dictionaries (for
// DICT/DICT256) and frame dictionary (for FRAME), plus the running
// normalisation anchor.
type EstimateState[T typekit.Numeric] struct {
	Kit typekit.Kit[T]

	DictBuilder    *dict.Builder[T] // uncapped, for DICT
	Dict256Builder *dict.Builder[T] // pre-seeded with the top-256 set, for DICT256
	FrameDict      *FrameDict       // shared frame delta dictionary

	MaxCnt int // largest len_m seen so far across any method, any block
}

// NewEstimateState returns a fresh EstimateState with MaxCnt initialised
// per InitialMaxCnt.
func NewEstimateState[T typekit.Numeric](kit typekit.Kit[T]) *EstimateState[T] {
	return &EstimateState[T]{Kit: kit, MaxCnt: InitialMaxCnt}
}

// Result is one method's Pass-A estimate for the prefix starting at the
// planner's current cursor.
type Result struct {
	Applicable bool
	Len        int // len_m: elements this method would cover
	Bytes      int // incremental_compressed_bytes_m, including header and any side data
}

// NormalizedCost implements the planner's scoring formula:
//
//	normalised_cost_m = (incremental_compressed_bytes_m * max_cnt) / len_m
//
// so blocks of different len can be compared on equal footing.
func (r Result) NormalizedCost(maxCnt int) float64 {
	if r.Len == 0 {
		return float64(1<<62) // never selected
	}

	return float64(r.Bytes) * float64(maxCnt) / float64(r.Len)
}

// RejectUnlessRaw reports whether a non-RAW result must be rejected:
// reject m if incremental_compressed_bytes_m >= len_m * sizeof(T) unless
// m = RAW -- compression must strictly improve over RAW.
func RejectUnlessRaw(m format.Method, r Result, width int) bool {
	if m == format.Raw {
		return false
	}

	return r.Bytes >= r.Len*width
}
