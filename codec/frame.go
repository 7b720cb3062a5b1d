package codec

import "github.com/colmosaic/mosaic/typekit"

// FrameDict is the per-column shared dictionary of up to 256 signed deltas
// the FRAME method draws from. It is populated during Pass A by the first
// blocks that choose FRAME and is frozen once full.
//
// FrameDict bounds at 256 entries and refuses further deltas once full, so
// every block ever written against this dictionary keeps referencing valid
// indices — see DESIGN.md for the reasoning behind choosing refusal over
// eviction.
type FrameDict struct {
	limit  int
	index  map[uint64]int // delta raw bits -> dictionary index
	values []uint64       // insertion-ordered delta raw bits
}

// NewFrameDict returns an empty FrameDict capped at limit entries (256 per
// spec).
func NewFrameDict(limit int) *FrameDict {
	return &FrameDict{limit: limit, index: make(map[uint64]int, limit)}
}

// IndexOf returns the dictionary index of deltaBits if present.
func (f *FrameDict) IndexOf(deltaBits uint64) (int, bool) {
	idx, ok := f.index[deltaBits]

	return idx, ok
}

// Insert adds deltaBits to the dictionary if it is not already present
// and the dictionary has room. Returns the (possibly pre-existing) index
// and whether the value is now represented in the dictionary -- false
// means the dictionary was full and deltaBits was not already in it.
func (f *FrameDict) Insert(deltaBits uint64) (int, bool) {
	if idx, ok := f.index[deltaBits]; ok {
		return idx, true
	}

	if len(f.values) >= f.limit {
		return 0, false
	}

	idx := len(f.values)
	f.values = append(f.values, deltaBits)
	f.index[deltaBits] = idx

	return idx, true
}

// Len returns the number of distinct deltas currently in the dictionary.
func (f *FrameDict) Len() int { return len(f.values) }

// Bits returns ceil(log2(len)), the framebits width stored in
// format.Header.FrameBits once Pass A completes.
func (f *FrameDict) Bits() uint8 { return framebitsFor(len(f.values)) }

// Cap returns the dictionary's entry limit (256 per spec).
func (f *FrameDict) Cap() int { return f.limit }

// framebitsFor returns ceil(log2(n)), with a one-bit floor for an empty or
// single-entry dictionary (matching bitvec/dict.BitsExtended's convention).
func framebitsFor(n int) uint8 {
	if n <= 1 {
		return 1
	}

	bits := uint8(0)
	for (1 << bits) < n {
		bits++
	}

	return bits
}

// Values returns the insertion-ordered delta values, for writing into the
// vmosaic heap at finalize.
func (f *FrameDict) Values() []uint64 { return f.values }

// At returns the delta raw bits stored at idx, for decode-side lookups.
func (f *FrameDict) At(idx int) uint64 { return f.values[idx] }

// deltaBitsFor computes kit.Delta(frame, v) for FRAME's admission test,
// exposed as a free function since FrameDict itself is type-erased (it
// only ever stores raw uint64 bit patterns, shared verbatim across every
// column regardless of T).
func deltaBitsFor[T typekit.Numeric](kit typekit.Kit[T], frame, v T) uint64 {
	return kit.Delta(frame, v)
}
