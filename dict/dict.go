// Package dict implements the shared distinct-value accumulator behind
// the DICT and DICT256 methods.
//
// A Builder accumulates values during Pass 0 (a full pre-scan, building
// the provisional dictionary DICT/DICT256's bit widths depend on) and
// again incrementally during Pass A's post-estimate hook, then emits a
// single sorted array at the end of Planner.Run.
//
// The design maintains an exact map keyed by a hash of the value to
// detect "have we seen this exactly before", separating the O(1) hash
// pre-filter from the O(log n) sorted-insert that only runs on a genuine
// miss.
package dict

import (
	"encoding/binary"
	"math/bits"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/colmosaic/mosaic/typekit"
)

// entry is one distinct value tracked by a Builder, along with how many
// times it has been observed (needed by DICT256's frequency-based cap).
type entry[T typekit.Numeric] struct {
	value T
	freq  int64
}

// Builder accumulates a distinct-value set for DICT or DICT256. T is the
// column's element type; kit supplies the ordering used to keep the
// finalized dictionary strictly sorted.
type Builder[T typekit.Numeric] struct {
	kit typekit.Kit[T]

	// byHash buckets candidate entries by xxhash.Sum64 of their raw bit
	// pattern, a hash-first collision tracker. Each bucket is a short
	// slice to absorb the (extremely unlikely) case of an xxhash
	// collision between two distinct T values.
	byHash map[uint64][]*entry[T]

	sorted []*entry[T] // kept sorted by kit.Less(value) as entries are added

	capped   bool // DICT256 mode: finalize keeps only the 256 most frequent
	capLimit int

	frozen       map[T]bool // capped builders only: the locked-in survivor set, set by Freeze
	frozenHasNil bool       // whether the frozen survivor set contains the nil sentinel (frozen's native map key can't match it)
	finalized    []T        // cached result of the capped selection, set by Freeze
}

// NewBuilder returns a Builder for the uncapped DICT method.
func NewBuilder[T typekit.Numeric](kit typekit.Kit[T]) *Builder[T] {
	return &Builder[T]{kit: kit, byHash: make(map[uint64][]*entry[T])}
}

// NewCappedBuilder returns a Builder for DICT256, which at Finalize keeps
// only the `limit` most frequent values (spec: "DICT256 is capped at 256
// entries by the most-frequent values").
func NewCappedBuilder[T typekit.Numeric](kit typekit.Kit[T], limit int) *Builder[T] {
	return &Builder[T]{kit: kit, byHash: make(map[uint64][]*entry[T]), capped: true, capLimit: limit}
}

// Add records one observation of v, inserting a new entry on first sight
// and bumping the frequency counter on repeat sightings.
//
// Returns true if v was newly inserted (a "miss" in the estimate's
// terminology), false if it was already present (a "hit", free to
// encode).
func (b *Builder[T]) Add(v T) bool {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], b.kit.Bits(v))
	h := xxhash.Sum64(buf[:])

	for _, e := range b.byHash[h] {
		if b.kit.Equal(e.value, v) {
			e.freq++

			return false
		}
	}

	e := &entry[T]{value: v, freq: 1}
	b.byHash[h] = append(b.byHash[h], e)

	idx := sort.Search(len(b.sorted), func(i int) bool { return !b.kit.Less(b.sorted[i].value, v) })
	b.sorted = append(b.sorted, nil)
	copy(b.sorted[idx+1:], b.sorted[idx:])
	b.sorted[idx] = e

	return true
}

// Contains reports whether v has already been accumulated, without
// mutating the builder. Used by DICT256's admission check: whether the
// value is in the pre-computed top-256.
//
// For a frozen capped builder, Contains checks the locked-in top-capLimit
// survivor set rather than every value Pass 0 ever saw -- otherwise Pass A
// could admit a value into a DICT256 block only for it to be missing from
// the dictionary Finalize ultimately writes out, once more than capLimit
// distinct values exist.
func (b *Builder[T]) Contains(v T) bool {
	if b.frozen != nil {
		if b.kit.IsNil(v) {
			return b.frozenHasNil
		}
		return b.frozen[v]
	}

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], b.kit.Bits(v))
	h := xxhash.Sum64(buf[:])

	for _, e := range b.byHash[h] {
		if b.kit.Equal(e.value, v) {
			return true
		}
	}

	return false
}

// Freeze locks in a capped builder's final survivor set, computed once Pass
// 0's full scan has finished, so every subsequent Contains call during Pass
// A reflects the same set Finalize will later emit. A no-op for uncapped
// builders or a builder that is already frozen.
func (b *Builder[T]) Freeze() {
	if !b.capped || b.frozen != nil {
		return
	}

	b.finalized = b.finalizeCapped()
	b.frozen = make(map[T]bool, len(b.finalized))
	for _, v := range b.finalized {
		if b.kit.IsNil(v) {
			b.frozenHasNil = true
			continue
		}
		b.frozen[v] = true
	}
}

// Len returns the number of distinct values accumulated so far (before
// any DICT256 cap is applied).
func (b *Builder[T]) Len() int { return len(b.sorted) }

// BitsExtended returns ceil(log2(n)) for n the builder's current distinct
// count, the running key bit width conventionally called "bits_extended".
// A single-entry (or empty) dictionary still needs 1 bit, BitVector's
// minimum width.
func BitsExtended(n int) uint8 {
	if n <= 1 {
		return 1
	}

	return uint8(bits.Len(uint(n - 1)))
}

// IndexOf returns the position of v within the builder's current sorted
// order, used during Pass A estimation before the dictionary is final.
func (b *Builder[T]) IndexOf(v T) (int, bool) {
	idx := sort.Search(len(b.sorted), func(i int) bool { return !b.kit.Less(b.sorted[i].value, v) })
	if idx < len(b.sorted) && b.kit.Equal(b.sorted[idx].value, v) {
		return idx, true
	}

	return 0, false
}

// Finalize returns the final sorted distinct-value array to write into the
// vmosaic heap. For a capped builder with more than capLimit distinct
// values, this additionally selects the capLimit most frequent values: a
// full sort of the distinct set by frequency, truncation to capLimit, then
// a value-ordered sort of only the survivors.
func (b *Builder[T]) Finalize() []T {
	if b.finalized != nil {
		return b.finalized
	}

	if !b.capped || len(b.sorted) <= b.capLimit {
		out := make([]T, len(b.sorted))
		for i, e := range b.sorted {
			out[i] = e.value
		}

		return out
	}

	return b.finalizeCapped()
}

func (b *Builder[T]) finalizeCapped() []T {
	// Copy all entries, sort them by descending frequency, keep at most
	// the top capLimit, then sort only those survivors back into value
	// order.
	byFreq := make([]*entry[T], len(b.sorted))
	copy(byFreq, b.sorted)

	sort.Slice(byFreq, func(i, j int) bool { return byFreq[i].freq > byFreq[j].freq })

	survivors := byFreq
	if len(survivors) > b.capLimit {
		survivors = survivors[:b.capLimit]
	}
	sort.Slice(survivors, func(i, j int) bool { return b.kit.Less(survivors[i].value, survivors[j].value) })

	out := make([]T, len(survivors))
	for i, e := range survivors {
		out[i] = e.value
	}

	return out
}

// IndexIn returns the index of v within a finalized (sorted) dictionary
// array, used by decode/select/join once the dictionary is fixed.
func IndexIn[T typekit.Numeric](dictionary []T, v T, kit typekit.Kit[T]) (int, bool) {
	idx := sort.Search(len(dictionary), func(i int) bool { return !kit.Less(dictionary[i], v) })
	if idx < len(dictionary) && kit.Equal(dictionary[idx], v) {
		return idx, true
	}

	return 0, false
}

// EncodeSorted DELTA-encodes a strictly ascending dictionary array using
// unsigned varints (no zigzag needed since consecutive diffs are always
// non-negative), self-compressing the finalized dictionary. The first
// value is written as a full varint of its raw bit pattern; every
// following value is the varint-encoded difference from its predecessor.
func EncodeSorted[T typekit.Numeric](values []T, kit typekit.Kit[T]) []byte {
	if len(values) == 0 {
		return nil
	}

	buf := make([]byte, 0, len(values)*2)
	var tmp [binary.MaxVarintLen64]byte

	prev := kit.Bits(values[0])
	n := binary.PutUvarint(tmp[:], prev)
	buf = append(buf, tmp[:n]...)

	for _, v := range values[1:] {
		cur := kit.Bits(v)
		n := binary.PutUvarint(tmp[:], cur-prev)
		buf = append(buf, tmp[:n]...)
		prev = cur
	}

	return buf
}

// DecodeSorted reverses EncodeSorted, reconstructing count values.
func DecodeSorted[T typekit.Numeric](data []byte, count int, kit typekit.Kit[T]) []T {
	out := make([]T, 0, count)
	if count == 0 {
		return out
	}

	offset := 0
	first, n := binary.Uvarint(data[offset:])
	if n <= 0 {
		return out
	}
	offset += n

	prev := first
	out = append(out, kit.FromBits(prev))

	for i := 1; i < count && offset < len(data); i++ {
		diff, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			break
		}
		offset += n
		prev += diff
		out = append(out, kit.FromBits(prev))
	}

	return out
}
