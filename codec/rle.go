package codec

import (
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// RLE stores one run of identical values as the single value, the block
// header's Cnt field doing double duty as the run length. A block never
// spans two distinct values.

// RleEstimate measures the run of equal values starting at pos, capped at
// format.MaxBlockCount.
func RleEstimate[T typekit.Numeric](kit typekit.Kit[T], values []T, pos int) Result {
	v := values[pos]
	n := 1

	for pos+n < len(values) && n < format.MaxBlockCount && kit.Equal(values[pos+n], v) {
		n++
	}

	return Result{Applicable: true, Len: n, Bytes: format.BlockHeaderSize + kit.Width()}
}

// RleCompress writes the single repeated value; n is carried in the block
// header's Cnt, not in the body.
func RleCompress[T typekit.Numeric](kit typekit.Kit[T], v T) []byte {
	body := make([]byte, kit.Width())
	putValue(body, kit, v)

	return body
}

// RleDecompress expands the single stored value into cnt copies.
func RleDecompress[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int) []T {
	v := getValue(body, kit)
	out := make([]T, cnt)
	for i := range out {
		out[i] = v
	}

	return out
}

// RleSelect tests the single run value once and, if it matches, appends
// every candidate oid in the block's range.
func RleSelect[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int, startOid int64, r Range[T], cand Candidate, out *[]int64) {
	v := getValue(body, kit)
	if !r.MatchesValue(kit, v) {
		cand.SkipTo(startOid + int64(cnt))

		return
	}

	forEachCandidateInBlock(cand, startOid, cnt, func(_ int, oid int64) {
		*out = append(*out, oid)
	})
}

// RleProject emits the single run value for every candidate oid in range.
func RleProject[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int, startOid int64, cand Candidate, emit func(oid int64, v T)) {
	v := getValue(body, kit)

	forEachCandidateInBlock(cand, startOid, cnt, func(_ int, oid int64) {
		emit(oid, v)
	})
}
