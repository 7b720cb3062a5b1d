package codec

import "github.com/colmosaic/mosaic/typekit"

// putValue writes v's raw bit pattern, little-endian, into dst[:kit.Width()].
func putValue[T typekit.Numeric](dst []byte, kit typekit.Kit[T], v T) {
	bits := kit.Bits(v)
	for i := 0; i < kit.Width(); i++ {
		dst[i] = byte(bits >> uint(i*8))
	}
}

// getValue reads a T back from src[:kit.Width()], the dual of putValue.
func getValue[T typekit.Numeric](src []byte, kit typekit.Kit[T]) T {
	var bits uint64
	for i := 0; i < kit.Width(); i++ {
		bits |= uint64(src[i]) << uint(i*8)
	}

	return kit.FromBits(bits)
}

// forEachCandidateInBlock walks cand over the oid range [startOid,
// startOid+cnt), invoking fn(localIndex, oid) for each candidate that falls
// in range, and advances cand past the block. Candidates are assumed
// ascending. Used by every method's Select/Project to skip decoding
// positions no candidate list asks for.
func forEachCandidateInBlock(cand Candidate, startOid int64, cnt int, fn func(localIndex int, oid int64)) {
	endOid := startOid + int64(cnt)

	for {
		oid, ok := cand.Peek()
		if !ok || oid >= endOid {
			return
		}

		if oid < startOid {
			cand.SkipTo(startOid)

			continue
		}

		cand.Next()
		fn(int(oid-startOid), oid)
	}
}

// drainCandidatesInBlock consumes and returns every candidate oid in
// [startOid, startOid+cnt), leaving cand positioned just past the block.
// Used by methods whose decode cost depends on how far into the block the
// last requested candidate falls (DELTA's sequential reconstruction).
func drainCandidatesInBlock(cand Candidate, startOid int64, cnt int) []int64 {
	var oids []int64

	forEachCandidateInBlock(cand, startOid, cnt, func(_ int, oid int64) {
		oids = append(oids, oid)
	})

	return oids
}
