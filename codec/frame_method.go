package codec

import (
	"github.com/colmosaic/mosaic/bitvec"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// FRAME stores a per-block base value (the "frame") and a fixed-width code
// vector of indices into the column's shared FrameDict, each index
// resolving to a signed delta from the frame. Unlike DELTA's per-element
// bit width, every block pays the same
// FrameDict.Bits() width, since the dictionary is shared column-wide; the
// benefit comes from blocks that repeat a small set of deltas (e.g. a
// mostly-constant column with rare jumps).
//
// Body layout: frame (kit.Width() bytes), then a BitVector of n dictionary
// indices at frameDict.Bits() width.

// FrameEstimate greedily extends the run starting at pos while every delta
// from the frame (values[pos]) is either already in frameDict or the
// dictionary still has room for it.
func FrameEstimate[T typekit.Numeric](kit typekit.Kit[T], frameDict *FrameDict, values []T, pos int) Result {
	frame := values[pos]
	n := 0
	newlySeen := make(map[uint64]bool)

	// n starts at 0 so the frame's own zero delta, which FrameCommit also
	// inserts, is admitted like every other delta.
	for pos+n < len(values) && n < format.MaxBlockCount {
		d := deltaBitsFor(kit, frame, values[pos+n])

		if _, ok := frameDict.IndexOf(d); !ok && !newlySeen[d] {
			if frameDict.Len()+len(newlySeen) >= frameDict.Cap() {
				break
			}
			newlySeen[d] = true
		}

		n++
	}

	if n == 0 {
		return Result{}
	}

	bits := int(framebitsFor(frameDict.Len() + len(newlySeen)))
	bodyBytes := kit.Width() + bitvec.SizeBytes(n, bits)

	return Result{Applicable: true, Len: n, Bytes: format.BlockHeaderSize + bodyBytes}
}

// FrameCommit admits every new delta the block needs into frameDict, once
// the planner commits to FRAME for this block via the post-estimate hook.
// Must be called before FrameCompress.
func FrameCommit[T typekit.Numeric](kit typekit.Kit[T], frameDict *FrameDict, values []T, pos, n int) {
	frame := values[pos]
	for i := 0; i < n; i++ {
		frameDict.Insert(deltaBitsFor(kit, frame, values[pos+i]))
	}
}

// FrameCompress writes the frame value and the packed dictionary-index code
// vector for n values starting at pos. frameDict must already contain every
// delta the block needs (via FrameCommit).
func FrameCompress[T typekit.Numeric](kit typekit.Kit[T], frameDict *FrameDict, values []T, pos, n int) []byte {
	frame := values[pos]
	bits := int(frameDict.Bits())

	body := make([]byte, kit.Width()+bitvec.SizeBytes(n, bits))
	putValue(body, kit, frame)

	codes := body[kit.Width():]
	for i := 0; i < n; i++ {
		idx, _ := frameDict.IndexOf(deltaBitsFor(kit, frame, values[pos+i]))
		bitvec.Set(codes, i, bits, uint64(idx))
	}

	return body
}

// FrameDecompress reverses FrameCompress, resolving each code through
// frameDict back into a delta and applying it to the frame.
func FrameDecompress[T typekit.Numeric](kit typekit.Kit[T], frameDict *FrameDict, body []byte, cnt int) []T {
	frame := getValue(body, kit)
	bits := int(frameDict.Bits())
	codes := body[kit.Width():]

	out := make([]T, cnt)
	for i := 0; i < cnt; i++ {
		idx := bitvec.Get(codes, i, bits)
		delta := frameDict.At(int(idx))
		out[i] = kit.Add(frame, delta)
	}

	return out
}

// FrameSelect decodes only the candidate-requested positions and tests
// them against r.
func FrameSelect[T typekit.Numeric](kit typekit.Kit[T], frameDict *FrameDict, body []byte, cnt int, startOid int64, r Range[T], cand Candidate, out *[]int64) {
	frame := getValue(body, kit)
	bits := int(frameDict.Bits())
	codes := body[kit.Width():]

	forEachCandidateInBlock(cand, startOid, cnt, func(i int, oid int64) {
		idx := bitvec.Get(codes, i, bits)
		v := kit.Add(frame, frameDict.At(int(idx)))
		if r.MatchesValue(kit, v) {
			*out = append(*out, oid)
		}
	})
}

// FrameProject decodes only the candidate-requested positions and emits
// (oid, value) pairs.
func FrameProject[T typekit.Numeric](kit typekit.Kit[T], frameDict *FrameDict, body []byte, cnt int, startOid int64, cand Candidate, emit func(oid int64, v T)) {
	frame := getValue(body, kit)
	bits := int(frameDict.Bits())
	codes := body[kit.Width():]

	forEachCandidateInBlock(cand, startOid, cnt, func(i int, oid int64) {
		idx := bitvec.Get(codes, i, bits)
		emit(oid, kit.Add(frame, frameDict.At(int(idx))))
	})
}
