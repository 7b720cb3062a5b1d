package codec

import (
	"github.com/colmosaic/mosaic/bitvec"
	"github.com/colmosaic/mosaic/dict"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// DICT and DICT256 both store a block as a BitVector of fixed-width
// dictionary indices; they differ only in how (and
// when) their shared dict.Builder admits new values. DICT256's builder is
// pre-seeded with the top-256 most frequent values during Pass 0 and never
// grows after that; DICT's builder grows on demand as Pass A encounters new
// values (the "post-estimate hook").

// DictEstimate measures the run of values starting at pos that the builder
// already contains, or (for the uncapped DICT method) that could be newly
// admitted. capped=true restricts admission to values already present,
// matching DICT256's frozen top-256 set.
func DictEstimate[T typekit.Numeric](builder *dict.Builder[T], values []T, pos int, capped bool) Result {
	n := 0
	newlySeen := make(map[T]bool)

	for pos+n < len(values) && n < format.MaxBlockCount {
		v := values[pos+n]

		if !builder.Contains(v) && !newlySeen[v] {
			if capped {
				break
			}

			newlySeen[v] = true
		}

		n++
	}

	if n == 0 {
		return Result{}
	}

	bits := int(dict.BitsExtended(builder.Len() + len(newlySeen)))

	return Result{Applicable: true, Len: n, Bytes: format.BlockHeaderSize + bitvec.SizeBytes(n, bits)}
}

// DictCommit records the block's values in builder once the planner commits
// to DICT/DICT256 for this block, growing the dictionary for future blocks
// via the post-estimate hook. Safe to call for DICT256 too: every
// value it admits already passed DictEstimate's Contains check, so Add only
// bumps a frequency counter.
func DictCommit[T typekit.Numeric](builder *dict.Builder[T], values []T, pos, n int) {
	for i := 0; i < n; i++ {
		builder.Add(values[pos+i])
	}
}

// DictCompress encodes n values starting at pos as fixed-width indices into
// the finalized, strictly-sorted dictionary array.
func DictCompress[T typekit.Numeric](kit typekit.Kit[T], dictionary []T, bitsW int, values []T, pos, n int) []byte {
	body := make([]byte, bitvec.SizeBytes(n, bitsW))

	for i := 0; i < n; i++ {
		idx, _ := dict.IndexIn(dictionary, values[pos+i], kit)
		bitvec.Set(body, i, bitsW, uint64(idx))
	}

	return body
}

// DictDecompress reverses DictCompress.
func DictDecompress[T typekit.Numeric](dictionary []T, bitsW int, body []byte, cnt int) []T {
	out := make([]T, cnt)
	for i := 0; i < cnt; i++ {
		idx := bitvec.Get(body, i, bitsW)
		out[i] = dictionary[idx]
	}

	return out
}

// DictSelect decodes only the candidate-requested positions, via the
// dictionary, and tests them against r.
func DictSelect[T typekit.Numeric](kit typekit.Kit[T], dictionary []T, bitsW int, body []byte, cnt int, startOid int64, r Range[T], cand Candidate, out *[]int64) {
	forEachCandidateInBlock(cand, startOid, cnt, func(i int, oid int64) {
		idx := bitvec.Get(body, i, bitsW)
		if r.MatchesValue(kit, dictionary[idx]) {
			*out = append(*out, oid)
		}
	})
}

// DictProject decodes only the candidate-requested positions via the
// dictionary and emits (oid, value) pairs.
func DictProject[T typekit.Numeric](dictionary []T, bitsW int, body []byte, cnt int, startOid int64, cand Candidate, emit func(oid int64, v T)) {
	forEachCandidateInBlock(cand, startOid, cnt, func(i int, oid int64) {
		idx := bitvec.Get(body, i, bitsW)
		emit(oid, dictionary[idx])
	})
}
