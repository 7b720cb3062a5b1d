package codec

import "github.com/colmosaic/mosaic/typekit"

// Range is a range-select predicate: [Lo, Hi] with independent
// inclusive/exclusive bounds on each side. A nil Lo/Hi means that side is
// open (unbounded). Anti inverts the match, implementing NOT BETWEEN.
// NilMatches additionally asks for a row whose value is the column's nil
// sentinel, matching the "IS NULL"/"IS NOT NULL" half of has_nil semantics
// that Lo/Hi alone cannot express (a nil sentinel never satisfies an
// ordering predicate, so it needs its own explicit opt-in).
type Range[T typekit.Numeric] struct {
	Lo, Hi         *T
	LoIncl, HiIncl bool
	Anti           bool
	NilMatches     bool
}

// Matches reports whether v satisfies r's ordering predicate, honouring
// Anti inversion. It does not know about nil sentinels; callers holding a
// typekit.Kit should use MatchesValue instead so a bound that happens to
// equal the nil sentinel can never accidentally match a nil row.
func (r Range[T]) Matches(v T) bool {
	ok := true
	if r.Lo != nil {
		if r.LoIncl {
			ok = ok && !(v < *r.Lo)
		} else {
			ok = ok && *r.Lo < v
		}
	}

	if r.Hi != nil {
		if r.HiIncl {
			ok = ok && !(*r.Hi < v)
		} else {
			ok = ok && v < *r.Hi
		}
	}

	if r.Anti {
		return !ok
	}

	return ok
}

// MatchesValue is the nil-aware counterpart of Matches: a nil sentinel
// value matches iff r.NilMatches is set (regardless of Anti or the
// ordering bounds), and a non-nil value matches according to Matches as
// usual. This keeps a select whose Lo/Hi happens to equal the type's nil
// sentinel from wrongly matching nil rows, and lets has_nil/IS NULL
// filters be expressed as a Range with no bounds and NilMatches set.
func (r Range[T]) MatchesValue(kit typekit.Kit[T], v T) bool {
	if kit.IsNil(v) {
		return r.NilMatches
	}

	return r.Matches(v)
}

// Pair is one (left-oid, right-oid) match produced by a join's inner loop.
type Pair struct {
	Left, Right int64
}
