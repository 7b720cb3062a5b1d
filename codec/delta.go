package codec

import (
	"github.com/colmosaic/mosaic/bitvec"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// DELTA stores a base value followed by a uniform-width code vector of
// successive differences, each delta computed and reconstructed through
// kit.Delta/kit.Add's unsigned modular arithmetic to stay overflow-free.
// Body layout: base (kit.Width() bytes), bitsUsed (1
// byte), then a BitVector of n-1 signed deltas packed at bitsUsed width.

// DeltaEstimate greedily extends the run starting at pos while the maximum
// delta bit width needed stays below the type's full width (beyond that,
// DELTA buys nothing over RAW).
func DeltaEstimate[T typekit.Numeric](kit typekit.Kit[T], values []T, pos int) Result {
	n := 1
	bitsUsed := 1

	for pos+n < len(values) && n < format.MaxBlockCount {
		d := kit.Delta(values[pos+n-1], values[pos+n])
		need := int(typekit.MinBitsFor(d, kit.Width()))
		if need > bitsUsed {
			if need >= kit.BitWidth() {
				break
			}
			bitsUsed = need
		}

		n++
	}

	bodyBytes := kit.Width() + 1 + bitvec.SizeBytes(n-1, bitsUsed)

	return Result{Applicable: true, Len: n, Bytes: format.BlockHeaderSize + bodyBytes}
}

// DeltaCompress writes the base value, the chosen bit width, and the
// packed delta code vector for n values starting at pos.
func DeltaCompress[T typekit.Numeric](kit typekit.Kit[T], values []T, pos, n int) []byte {
	bitsUsed := 1
	for i := 1; i < n; i++ {
		d := kit.Delta(values[pos+i-1], values[pos+i])
		need := int(typekit.MinBitsFor(d, kit.Width()))
		if need > bitsUsed {
			bitsUsed = need
		}
	}

	w := kit.Width()
	body := make([]byte, w+1+bitvec.SizeBytes(n-1, bitsUsed))
	putValue(body, kit, values[pos])
	body[w] = byte(bitsUsed)

	codes := body[w+1:]
	for i := 1; i < n; i++ {
		d := kit.Delta(values[pos+i-1], values[pos+i])
		bitvec.Set(codes, i-1, bitsUsed, d&deltaMask(bitsUsed))
	}

	return body
}

func deltaMask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << uint(bits)) - 1
}

// deltaDecodeThrough reconstructs values[0..upto] (inclusive) from a DELTA
// block body, the shared sequential-reconstruction step Decompress, Select,
// and Project all build on: DELTA has no random-access decode, since each
// value depends on its predecessor, but reconstruction still need not run
// past the last position a caller actually needs.
func deltaDecodeThrough[T typekit.Numeric](kit typekit.Kit[T], body []byte, upto int) []T {
	w := kit.Width()
	bitsUsed := int(body[w])
	codes := body[w+1:]

	out := make([]T, upto+1)
	out[0] = getValue(body, kit)

	for i := 1; i <= upto; i++ {
		raw := bitvec.Get(codes, i-1, bitsUsed)
		delta := kit.SignExtend(raw, uint8(bitsUsed))
		out[i] = kit.Add(out[i-1], delta)
	}

	return out
}

// DeltaDecompress fully reconstructs the cnt values a DELTA block encodes.
func DeltaDecompress[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int) []T {
	if cnt == 0 {
		return nil
	}

	return deltaDecodeThrough(kit, body, cnt-1)
}

// DeltaSelect drains the block's candidate oids up front (so the real
// Candidate only advances once per block), reconstructs the block
// sequentially only as far as the last one requires, and tests each decoded
// value against r.
func DeltaSelect[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int, startOid int64, r Range[T], cand Candidate, out *[]int64) {
	oids := drainCandidatesInBlock(cand, startOid, cnt)
	if len(oids) == 0 {
		return
	}

	last := int(oids[len(oids)-1] - startOid)
	values := deltaDecodeThrough(kit, body, last)

	for _, oid := range oids {
		if r.MatchesValue(kit, values[oid-startOid]) {
			*out = append(*out, oid)
		}
	}
}

// DeltaProject is DeltaSelect's projection counterpart.
func DeltaProject[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int, startOid int64, cand Candidate, emit func(oid int64, v T)) {
	oids := drainCandidatesInBlock(cand, startOid, cnt)
	if len(oids) == 0 {
		return
	}

	last := int(oids[len(oids)-1] - startOid)
	values := deltaDecodeThrough(kit, body, last)

	for _, oid := range oids {
		emit(oid, values[oid-startOid])
	}
}
