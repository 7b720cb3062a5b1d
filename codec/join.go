package codec

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/colmosaic/mosaic/bitvec"
	"github.com/colmosaic/mosaic/dict"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// ValueIndex buckets oids by the xxHash64 of their value's raw bit pattern.
// A plain Go map keyed on T would do the same job for comparable T, but
// xxhash collapses every numeric width onto the same 8-byte hash path and
// keeps an explicit bits comparison on lookup to resolve the rare 64-bit
// hash collision rather than trusting the hash alone.
type ValueIndex[T typekit.Numeric] struct {
	kit     typekit.Kit[T]
	buckets map[uint64][]indexEntry[T]
}

type indexEntry[T typekit.Numeric] struct {
	value T
	oid   int64
}

// NewValueIndex returns an empty index over kit's type, sized for sizeHint
// entries.
func NewValueIndex[T typekit.Numeric](kit typekit.Kit[T], sizeHint int) *ValueIndex[T] {
	return &ValueIndex[T]{kit: kit, buckets: make(map[uint64][]indexEntry[T], sizeHint)}
}

func (idx *ValueIndex[T]) hash(v T) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], idx.kit.Bits(v))

	return xxhash.Sum64(buf[:])
}

// Add records one (value, oid) observation.
func (idx *ValueIndex[T]) Add(v T, oid int64) {
	idx.buckets[idx.hash(v)] = append(idx.buckets[idx.hash(v)], indexEntry[T]{value: v, oid: oid})
}

// Lookup returns every oid previously added under a value equal to v.
func (idx *ValueIndex[T]) Lookup(v T) []int64 {
	bucket := idx.buckets[idx.hash(v)]
	if len(bucket) == 0 {
		return nil
	}

	oids := make([]int64, 0, len(bucket))
	for _, e := range bucket {
		if idx.kit.Equal(e.value, v) {
			oids = append(oids, e.oid)
		}
	}

	return oids
}

// Each invokes fn once per distinct value added to idx, passing every oid
// recorded under that value. Used by JoinInner's algebraic fast paths to
// probe each outer-side distinct value against an inner block's layout
// instead of decoding the block row by row.
func (idx *ValueIndex[T]) Each(fn func(v T, oids []int64)) {
	for _, bucket := range idx.buckets {
		// Entries sharing a hash bucket are usually repeats of one value;
		// occasionally (an xxhash collision) they are genuinely distinct,
		// so group by raw bits before invoking fn once per distinct value.
		var order []uint64
		groups := make(map[uint64][]int64)
		values := make(map[uint64]T)

		for _, e := range bucket {
			b := idx.kit.Bits(e.value)
			if _, ok := groups[b]; !ok {
				order = append(order, b)
				values[b] = e.value
			}
			groups[b] = append(groups[b], e.oid)
		}

		for _, b := range order {
			fn(values[b], groups[b])
		}
	}
}

// JoinInner produces (outer-oid, inner-oid) pairs for one compressed inner
// block against outerIndex, restricted to the oids innerCand still offers.
// RLE and DICT/DICT256 fast-path without ever materialising the block's
// decoded values; LINEAR inverts its trend formula when the block has no
// residual to decode at all. Every other method (and a LINEAR block that
// does carry residuals) falls back to decoding the candidate-requested
// positions via Project, the same decode-on-demand cost Select/Project
// already pay.
// nilMatches controls whether two nil-sentinel values join to each other,
// matching spec join semantics: nil != nil unless explicitly requested.
func JoinInner[T typekit.Numeric](m format.Method, art *Artifacts[T], body []byte, cnt int, startOid int64, cand Candidate, outerIndex *ValueIndex[T], nilMatches bool) []Pair {
	switch m {
	case format.RLE:
		return joinInnerRLE(art.Kit, body, cnt, startOid, cand, outerIndex, nilMatches)
	case format.Linear:
		return joinInnerLinear(m, art, body, cnt, startOid, cand, outerIndex, nilMatches)
	case format.Dict:
		return joinInnerDict(art.Kit, art.Dict, int(dict.BitsExtended(len(art.Dict))), body, cnt, startOid, cand, outerIndex, nilMatches)
	case format.DICT256:
		return joinInnerDict(art.Kit, art.Dict256, int(dict.BitsExtended(len(art.Dict256))), body, cnt, startOid, cand, outerIndex, nilMatches)
	default:
		return joinInnerDefault(m, art, body, cnt, startOid, cand, outerIndex, nilMatches)
	}
}

// lookupJoin wraps ValueIndex.Lookup with nil_matches semantics: a nil
// sentinel value only probes the index (where it can only ever match
// another nil, via kit.Equal's NaN-aware comparison) when nilMatches is
// set; otherwise a nil value never joins to anything.
func lookupJoin[T typekit.Numeric](kit typekit.Kit[T], idx *ValueIndex[T], v T, nilMatches bool) []int64 {
	if kit.IsNil(v) && !nilMatches {
		return nil
	}

	return idx.Lookup(v)
}

// joinInnerRLE reads the block's single repeated value once, looks it up in
// outerIndex once, and -- only if it matches anything -- emits the whole
// run's worth of pairs. A non-matching run skips straight past without
// ever touching a per-row decode.
func joinInnerRLE[T typekit.Numeric](kit typekit.Kit[T], body []byte, cnt int, startOid int64, cand Candidate, outerIndex *ValueIndex[T], nilMatches bool) []Pair {
	v := getValue(body, kit)

	outerOids := lookupJoin(kit, outerIndex, v, nilMatches)
	if len(outerOids) == 0 {
		cand.SkipTo(startOid + int64(cnt))

		return nil
	}

	var pairs []Pair
	forEachCandidateInBlock(cand, startOid, cnt, func(_ int, oid int64) {
		for _, oOid := range outerOids {
			pairs = append(pairs, Pair{Left: oOid, Right: oid})
		}
	})

	return pairs
}

// joinInnerDict reads only the fixed-width dictionary codes (never the
// method's decompressed value array), caching one outerIndex lookup per
// distinct code so a block with few distinct dictionary entries pays for
// one hash probe per entry rather than one per row.
func joinInnerDict[T typekit.Numeric](kit typekit.Kit[T], dictionary []T, bitsW int, body []byte, cnt int, startOid int64, cand Candidate, outerIndex *ValueIndex[T], nilMatches bool) []Pair {
	lookups := make(map[uint64][]int64)

	var pairs []Pair
	forEachCandidateInBlock(cand, startOid, cnt, func(i int, oid int64) {
		code := bitvec.Get(body, i, bitsW)
		outerOids, ok := lookups[code]
		if !ok {
			outerOids = lookupJoin(kit, outerIndex, dictionary[code], nilMatches)
			lookups[code] = outerOids
		}

		for _, oOid := range outerOids {
			pairs = append(pairs, Pair{Left: oOid, Right: oid})
		}
	})

	return pairs
}

// joinInnerLinear inverts LINEAR's trend formula (predicted[i] = base +
// i*step) to find, for each outer value, the single block position that
// could hold it -- without ever running the block's sequential Add-chain
// reconstruction. This is only exact when every row matches the trend
// exactly (zero residual at every position, checked by scanning the
// residual BitVector's raw codes for all-zero -- bitsUsed alone can't be
// trusted, since even a 1-bit-wide residual can still encode a real +/-1
// offset from the trend); a block carrying any nonzero residual falls back
// to the ordinary decode-on-demand path, since the algebraic guess alone
// cannot rule out a different, residual-adjusted position holding the
// value.
func joinInnerLinear[T typekit.Numeric](m format.Method, art *Artifacts[T], body []byte, cnt int, startOid int64, cand Candidate, outerIndex *ValueIndex[T], nilMatches bool) []Pair {
	kit := art.Kit
	w := kit.Width()
	base := getValue(body, kit)

	var step uint64
	for i := 0; i < w; i++ {
		step |= uint64(body[w+i]) << uint(i*8)
	}

	bitsUsed := int(body[2*w])
	if step == 0 || !residualsAllZero(body[2*w+1:], bitsUsed, cnt) {
		return joinInnerDefault(m, art, body, cnt, startOid, cand, outerIndex, nilMatches)
	}

	stepSigned := signExtendToInt64(step, kit.BitWidth())

	oids := drainCandidatesInBlock(cand, startOid, cnt)
	if len(oids) == 0 {
		return nil
	}

	var pairs []Pair
	outerIndex.Each(func(v T, outerOids []int64) {
		if kit.IsNil(v) && !nilMatches {
			return
		}

		diff := int64(v) - int64(base)
		if diff%stepSigned != 0 {
			return
		}

		i := diff / stepSigned
		if i < 0 || i >= int64(cnt) {
			return
		}

		oid := startOid + i
		if !containsSorted(oids, oid) {
			return
		}

		for _, oOid := range outerOids {
			pairs = append(pairs, Pair{Left: oOid, Right: oid})
		}
	})

	return pairs
}

// residualsAllZero reports whether every one of cnt residual codes packed
// in codes at bitsUsed width is zero -- the cheap, decode-free test for
// whether a LINEAR block is a perfect trend with nothing to reconstruct.
func residualsAllZero(codes []byte, bitsUsed, cnt int) bool {
	for i := 0; i < cnt; i++ {
		if bitvec.Get(codes, i, bitsUsed) != 0 {
			return false
		}
	}

	return true
}

// joinInnerDefault decodes the candidate-requested positions via Project
// and probes outerIndex per decoded value, the same cost RAW/DELTA/PREFIX/
// FRAME select/project already pay -- these methods have no cheap
// algebraic or dictionary-backed shortcut to a join key.
func joinInnerDefault[T typekit.Numeric](m format.Method, art *Artifacts[T], body []byte, cnt int, startOid int64, cand Candidate, outerIndex *ValueIndex[T], nilMatches bool) []Pair {
	var pairs []Pair
	Project(m, art, body, cnt, startOid, cand, func(oid int64, v T) {
		for _, oOid := range lookupJoin(art.Kit, outerIndex, v, nilMatches) {
			pairs = append(pairs, Pair{Left: oOid, Right: oid})
		}
	})

	return pairs
}

// signExtendToInt64 sign-extends the low bits-bit two's-complement value
// raw into a genuine int64, the form joinInnerLinear's real (not modular)
// division needs.
func signExtendToInt64(raw uint64, bits int) int64 {
	if bits >= 64 {
		return int64(raw)
	}

	signBit := uint64(1) << uint(bits-1)
	if raw&signBit != 0 {
		return int64(raw | (^uint64(0) << uint(bits)))
	}

	return int64(raw)
}

// containsSorted reports whether the ascending slice sorted contains v.
func containsSorted(sorted []int64, v int64) bool {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= v })

	return i < len(sorted) && sorted[i] == v
}
