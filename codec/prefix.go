package codec

import (
	"github.com/colmosaic/mosaic/bitvec"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// PREFIX stores the high bits shared by every value in a block once, and
// packs only the differing low bits per element: a block of
// values that share a common high-order prefix -- IPv4 subnets, clustered
// ids, truncated timestamps -- needs only ceil(log2(range)) bits per
// element plus one shared prefix, rather than a per-element delta.
//
// Body layout: lowBits (1 byte), the shared prefix packed into
// BitWidth()-lowBits bits (a single BitVector slot), then a BitVector of n
// low-bit codes at lowBits width.

// prefixLowBits returns the minimum low-bit width covering every value in
// values[pos:pos+n]'s distance from values[pos]'s high bits, via the
// bitwise XOR of their raw bit patterns (the highest set bit of any XOR is
// the lowest bit position above which every value must agree).
func prefixLowBits[T typekit.Numeric](kit typekit.Kit[T], values []T, pos, n int) int {
	base := kit.Bits(values[pos])

	var acc uint64
	for i := 1; i < n; i++ {
		acc |= kit.Bits(values[pos+i]) ^ base
	}

	bits := 0
	for acc != 0 {
		bits++
		acc >>= 1
	}

	return bits
}

// PrefixEstimate greedily extends the run starting at pos while the shared
// low-bit width needed stays below the type's full width.
func PrefixEstimate[T typekit.Numeric](kit typekit.Kit[T], values []T, pos int) Result {
	n := 1
	lowBits := 0

	for pos+n < len(values) && n < format.MaxBlockCount {
		candidate := prefixLowBits(kit, values, pos, n+1)
		if candidate >= kit.BitWidth() {
			break
		}

		lowBits = candidate
		n++
	}

	prefixWidth := kit.BitWidth() - lowBits
	bodyBytes := 1 + bitvec.SizeBytes(1, prefixWidth) + bitvec.SizeBytes(n, lowBits)

	return Result{Applicable: true, Len: n, Bytes: format.BlockHeaderSize + bodyBytes}
}

// PrefixCompress writes the shared low-bit width, the prefix, and the
// packed low-bit code vector for n values starting at pos.
func PrefixCompress[T typekit.Numeric](kit typekit.Kit[T], values []T, pos, n int) []byte {
	lowBits := prefixLowBits(kit, values, pos, n)
	prefixWidth := kit.BitWidth() - lowBits
	lowMask := deltaMask(lowBits)

	prefixSize := bitvec.SizeBytes(1, prefixWidth)
	body := make([]byte, 1+prefixSize+bitvec.SizeBytes(n, lowBits))
	body[0] = byte(lowBits)

	base := kit.Bits(values[pos])
	bitvec.Set(body[1:1+prefixSize], 0, prefixWidth, base>>uint(lowBits))

	codes := body[1+prefixSize:]
	for i := 0; i < n; i++ {
		bitvec.Set(codes, i, lowBits, kit.Bits(values[pos+i])&lowMask)
	}

	return body
}

// PrefixDecompress reconstructs the cnt values a PREFIX block encodes.
func PrefixDecompress[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int) []T {
	lowBits := int(body[0])
	prefixWidth := kit.BitWidth() - lowBits
	prefixSize := bitvec.SizeBytes(1, prefixWidth)

	prefixBits := bitvec.Get(body[1:1+prefixSize], 0, prefixWidth)
	highBits := prefixBits << uint(lowBits)

	codes := body[1+prefixSize:]
	out := make([]T, cnt)
	for i := 0; i < cnt; i++ {
		low := bitvec.Get(codes, i, lowBits)
		out[i] = kit.FromBits(highBits | low)
	}

	return out
}

// PrefixSelect decodes only the candidate-requested positions and tests
// them against r.
func PrefixSelect[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int, startOid int64, r Range[T], cand Candidate, out *[]int64) {
	lowBits := int(body[0])
	prefixWidth := kit.BitWidth() - lowBits
	prefixSize := bitvec.SizeBytes(1, prefixWidth)
	highBits := bitvec.Get(body[1:1+prefixSize], 0, prefixWidth) << uint(lowBits)
	codes := body[1+prefixSize:]

	forEachCandidateInBlock(cand, startOid, cnt, func(i int, oid int64) {
		low := bitvec.Get(codes, i, lowBits)
		v := kit.FromBits(highBits | low)
		if r.MatchesValue(kit, v) {
			*out = append(*out, oid)
		}
	})
}

// PrefixProject decodes only the candidate-requested positions and emits
// (oid, value) pairs.
func PrefixProject[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int, startOid int64, cand Candidate, emit func(oid int64, v T)) {
	lowBits := int(body[0])
	prefixWidth := kit.BitWidth() - lowBits
	prefixSize := bitvec.SizeBytes(1, prefixWidth)
	highBits := bitvec.Get(body[1:1+prefixSize], 0, prefixWidth) << uint(lowBits)
	codes := body[1+prefixSize:]

	forEachCandidateInBlock(cand, startOid, cnt, func(i int, oid int64) {
		low := bitvec.Get(codes, i, lowBits)
		emit(oid, kit.FromBits(highBits|low))
	})
}
