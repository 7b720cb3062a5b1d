package codec

import (
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// RAW stores every value uncompressed, the fallback method every other
// method's estimate is compared against via RejectUnlessRaw.

// RawEstimate always applies and covers the remainder of the column, capped
// at format.MaxBlockCount since Cnt is a 24-bit block header field.
func RawEstimate[T typekit.Numeric](kit typekit.Kit[T], values []T, pos int) Result {
	n := len(values) - pos
	if n > format.MaxBlockCount {
		n = format.MaxBlockCount
	}

	return Result{Applicable: true, Len: n, Bytes: format.BlockHeaderSize + n*kit.Width()}
}

// RawCompress writes n values starting at pos as kit.Width()-byte
// little-endian fields, one after another.
func RawCompress[T typekit.Numeric](kit typekit.Kit[T], values []T, pos, n int) []byte {
	w := kit.Width()
	body := make([]byte, n*w)

	for i := 0; i < n; i++ {
		putValue(body[i*w:], kit, values[pos+i])
	}

	return body
}

// RawDecompress reverses RawCompress.
func RawDecompress[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int) []T {
	w := kit.Width()
	out := make([]T, cnt)

	for i := 0; i < cnt; i++ {
		out[i] = getValue(body[i*w:], kit)
	}

	return out
}

// RawSelect decodes only the positions any candidate asks for, testing each
// against r and appending matching oids to out.
func RawSelect[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int, startOid int64, r Range[T], cand Candidate, out *[]int64) {
	w := kit.Width()

	forEachCandidateInBlock(cand, startOid, cnt, func(i int, oid int64) {
		v := getValue(body[i*w:], kit)
		if r.MatchesValue(kit, v) {
			*out = append(*out, oid)
		}
	})
}

// RawProject decodes only the positions any candidate asks for and emits
// (oid, value) pairs via emit.
func RawProject[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int, startOid int64, cand Candidate, emit func(oid int64, v T)) {
	w := kit.Width()

	forEachCandidateInBlock(cand, startOid, cnt, func(i int, oid int64) {
		emit(oid, getValue(body[i*w:], kit))
	})
}
