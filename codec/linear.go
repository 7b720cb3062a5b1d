package codec

import (
	"github.com/colmosaic/mosaic/bitvec"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// LINEAR predicts each value from a base and a constant step (predicted[i]
// = base + i*step, computed as a running sum in the unsigned delta type)
// and stores only the residual between the prediction and the actual
// value. It generalizes DELTA from "predict from the previous
// value" to "predict from a fitted trend line", so a near-arithmetic
// sequence (timestamps, auto-increment ids with occasional gaps) needs far
// fewer residual bits than DELTA needs deltas.
//
// Body layout: base (kit.Width() bytes), step (kit.Width() bytes, as
// unsigned delta-type bits), bitsUsed (1 byte), then a BitVector of n
// signed residuals packed at bitsUsed width.

// linearStep picks the trend step from the first two values of the
// candidate run, or zero if there is only one value left.
func linearStep[T typekit.Numeric](kit typekit.Kit[T], values []T, pos int) uint64 {
	if pos+1 >= len(values) {
		return 0
	}

	return kit.Delta(values[pos], values[pos+1])
}

// linearPredicted returns the n predicted values for the trend starting at
// base with the given step, each one the running sum of the previous
// prediction and step in the unsigned delta type.
func linearPredicted[T typekit.Numeric](kit typekit.Kit[T], base T, step uint64, n int) []T {
	out := make([]T, n)
	out[0] = base

	for i := 1; i < n; i++ {
		out[i] = kit.Add(out[i-1], step)
	}

	return out
}

// LinearEstimate greedily extends the run starting at pos along the fitted
// step while the maximum residual bit width needed stays below the type's
// full width.
func LinearEstimate[T typekit.Numeric](kit typekit.Kit[T], values []T, pos int) Result {
	step := linearStep(kit, values, pos)
	n := 1
	bitsUsed := 1
	predicted := values[pos]

	for pos+n < len(values) && n < format.MaxBlockCount {
		predicted = kit.Add(predicted, step)
		resid := kit.Delta(predicted, values[pos+n])
		need := int(typekit.MinBitsFor(resid, kit.Width()))
		if need > bitsUsed {
			if need >= kit.BitWidth() {
				break
			}
			bitsUsed = need
		}

		n++
	}

	bodyBytes := 2*kit.Width() + 1 + bitvec.SizeBytes(n, bitsUsed)

	return Result{Applicable: true, Len: n, Bytes: format.BlockHeaderSize + bodyBytes}
}

// LinearCompress writes the base, step, chosen residual bit width, and the
// packed residual code vector for n values starting at pos.
func LinearCompress[T typekit.Numeric](kit typekit.Kit[T], values []T, pos, n int) []byte {
	step := linearStep(kit, values, pos)
	predicted := linearPredicted(kit, values[pos], step, n)

	bitsUsed := 1
	for i := 0; i < n; i++ {
		resid := kit.Delta(predicted[i], values[pos+i])
		need := int(typekit.MinBitsFor(resid, kit.Width()))
		if need > bitsUsed {
			bitsUsed = need
		}
	}

	w := kit.Width()
	body := make([]byte, 2*w+1+bitvec.SizeBytes(n, bitsUsed))
	putValue(body, kit, values[pos])
	var stepBuf [8]byte
	for i := 0; i < w; i++ {
		stepBuf[i] = byte(step >> uint(i*8))
	}
	copy(body[w:], stepBuf[:w])
	body[2*w] = byte(bitsUsed)

	codes := body[2*w+1:]
	for i := 0; i < n; i++ {
		resid := kit.Delta(predicted[i], values[pos+i])
		bitvec.Set(codes, i, bitsUsed, resid&deltaMask(bitsUsed))
	}

	return body
}

// linearDecodeThrough reconstructs values[0..upto] from a LINEAR block. The
// trend prediction is a running sum, so (like DELTA) reconstruction is
// sequential, but only as far as the caller needs.
func linearDecodeThrough[T typekit.Numeric](kit typekit.Kit[T], body []byte, upto int) []T {
	w := kit.Width()
	base := getValue(body, kit)

	var step uint64
	for i := 0; i < w; i++ {
		step |= uint64(body[w+i]) << uint(i*8)
	}

	bitsUsed := int(body[2*w])
	codes := body[2*w+1:]

	out := make([]T, upto+1)
	predicted := base

	for i := 0; i <= upto; i++ {
		raw := bitvec.Get(codes, i, bitsUsed)
		resid := kit.SignExtend(raw, uint8(bitsUsed))
		out[i] = kit.Add(predicted, resid)

		if i < upto {
			predicted = kit.Add(predicted, step)
		}
	}

	return out
}

// LinearDecompress fully reconstructs the cnt values a LINEAR block encodes.
func LinearDecompress[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int) []T {
	if cnt == 0 {
		return nil
	}

	return linearDecodeThrough(kit, body, cnt-1)
}

// LinearSelect drains the block's candidates up front, reconstructs only as
// far as the last one needs, and tests each against r.
func LinearSelect[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int, startOid int64, r Range[T], cand Candidate, out *[]int64) {
	oids := drainCandidatesInBlock(cand, startOid, cnt)
	if len(oids) == 0 {
		return
	}

	last := int(oids[len(oids)-1] - startOid)
	values := linearDecodeThrough(kit, body, last)

	for _, oid := range oids {
		if r.MatchesValue(kit, values[oid-startOid]) {
			*out = append(*out, oid)
		}
	}
}

// LinearProject is LinearSelect's projection counterpart.
func LinearProject[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int, startOid int64, cand Candidate, emit func(oid int64, v T)) {
	oids := drainCandidatesInBlock(cand, startOid, cnt)
	if len(oids) == 0 {
		return
	}

	last := int(oids[len(oids)-1] - startOid)
	values := linearDecodeThrough(kit, body, last)

	for _, oid := range oids {
		emit(oid, values[oid-startOid])
	}
}
