package codec

import (
	"github.com/colmosaic/mosaic/bitvec"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// RangeBound returns a cheap [lo, hi] bound on the values a block holds,
// without decoding its body into per-row values, or ok=false when the
// method has no such shortcut. The RLE bound is exact (the block's single
// value is both endpoints). The PREFIX bound is loose: the shared high-bit
// prefix with the low bits all clear and all set, which contains every
// value in the block but need not be attained. DICT/DICT256 bounds are
// loose too (the block's values are a
// subset of the column-wide dictionary, so the dictionary's own min/max
// bounds them, but the block need not actually touch either endpoint).
// RAW, DELTA, LINEAR, and FRAME have no per-block summary cheaper than
// decoding and return ok=false.
func RangeBound[T typekit.Numeric](m format.Method, art *Artifacts[T], body []byte, cnt int) (lo, hi T, ok bool) {
	switch m {
	case format.RLE:
		v := getValue(body, art.Kit)

		return v, v, true
	case format.Prefix:
		return prefixBound(art.Kit, body)
	case format.Dict:
		return dictBound(art.Dict)
	case format.DICT256:
		return dictBound(art.Dict256)
	default:
		var zero T

		return zero, zero, false
	}
}

func prefixBound[T typekit.Numeric](kit typekit.Kit[T], body []byte) (T, T, bool) {
	lowBits := int(body[0])
	prefixWidth := kit.BitWidth() - lowBits
	prefixSize := bitvec.SizeBytes(1, prefixWidth)
	highBits := bitvec.Get(body[1:1+prefixSize], 0, prefixWidth) << uint(lowBits)
	lowMask := deltaMask(lowBits)

	lo := kit.FromBits(highBits)
	hi := kit.FromBits(highBits | lowMask)

	return lo, hi, true
}

// dictBound returns the finalized dictionary's first and last entries as a
// loose bound: DICT/DICT256 dictionaries are kept strictly sorted (see
// dict.Builder), so dictionary[0]/dictionary[len-1] are the column-wide
// min/max every block's values are drawn from, whether or not this
// particular block uses either endpoint.
func dictBound[T typekit.Numeric](dictionary []T) (T, T, bool) {
	if len(dictionary) == 0 {
		var zero T

		return zero, zero, false
	}

	return dictionary[0], dictionary[len(dictionary)-1], true
}
