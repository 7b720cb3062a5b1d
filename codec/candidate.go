// Package codec implements the per-method estimate/compress/decompress/
// select/project/join-inner-loop contract for RAW, RLE, DICT, DICT256,
// DELTA, LINEAR, FRAME, and PREFIX.
//
// The variant set is closed and small, so a sum type is preferred over an
// interface with eight implementations: each method is a set of generic
// functions over format.Method, and plan/scan dispatch with a single
// switch. This mirrors a closed-set dispatch style generalized from a
// handful of encodings to eight methods, closed.
package codec

import "iter"

// Candidate is the external candidate-list iterator a scan integrates
// with: an ascending sequence of oids restricting a scan. It is a narrow
// consumer-side contract — only the interface the core actually consumes
// is specified here.
type Candidate interface {
	// Next advances to the next candidate oid >= the current position and
	// returns it. ok is false once the iterator is exhausted.
	Next() (oid int64, ok bool)

	// Peek returns the next candidate oid without advancing, for codecs
	// that need to check whether it falls within the current block's
	// range before deciding to decode.
	Peek() (oid int64, ok bool)

	// SkipTo advances the iterator to the first candidate oid >= target,
	// letting a codec skip over an entire block's oid range in O(1) for
	// dense candidate lists without visiting each oid.
	SkipTo(target int64)

	// Exhausted reports whether the iterator has no more candidates.
	Exhausted() bool
}

// DenseRange is a Candidate over every oid in [lo, hi).
type DenseRange struct {
	lo, hi, cur int64
}

// NewDenseRange returns a Candidate yielding every oid in [lo, hi).
func NewDenseRange(lo, hi int64) *DenseRange {
	return &DenseRange{lo: lo, hi: hi, cur: lo}
}

func (d *DenseRange) Next() (int64, bool) {
	if d.cur >= d.hi {
		return 0, false
	}

	v := d.cur
	d.cur++

	return v, true
}

func (d *DenseRange) Peek() (int64, bool) {
	if d.cur >= d.hi {
		return 0, false
	}

	return d.cur, true
}

func (d *DenseRange) SkipTo(target int64) {
	if target > d.cur {
		d.cur = target
	}
}

func (d *DenseRange) Exhausted() bool { return d.cur >= d.hi }

// Sparse is a Candidate over an explicit ascending oid slice.
type Sparse struct {
	oids []int64
	idx  int
}

// NewSparse returns a Candidate over oids, which must already be sorted
// ascending: an externally-supplied ascending sequence.
func NewSparse(oids []int64) *Sparse {
	return &Sparse{oids: oids}
}

func (s *Sparse) Next() (int64, bool) {
	if s.idx >= len(s.oids) {
		return 0, false
	}

	v := s.oids[s.idx]
	s.idx++

	return v, true
}

func (s *Sparse) Peek() (int64, bool) {
	if s.idx >= len(s.oids) {
		return 0, false
	}

	return s.oids[s.idx], true
}

func (s *Sparse) SkipTo(target int64) {
	for s.idx < len(s.oids) && s.oids[s.idx] < target {
		s.idx++
	}
}

func (s *Sparse) Exhausted() bool { return s.idx >= len(s.oids) }

// All returns an iterator over the remaining candidates. It consumes the
// underlying Candidate via Next as it goes, so the Candidate is exhausted
// once the iteration has run to completion.
func All(c Candidate) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for {
			oid, ok := c.Next()
			if !ok {
				return
			}

			if !yield(oid) {
				return
			}
		}
	}
}
