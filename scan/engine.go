// Package scan implements range/theta select, project, and inner-join
// entry points that walk a compressed block stream directly, decoding
// only what a candidate-list iterator actually asks for.
package scan

import (
	"github.com/colmosaic/mosaic/codec"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// Engine drives read access over one column's compressed block stream,
// advancing and decoding on demand without a full decompression pass.
type Engine[T typekit.Numeric] struct {
	kit       typekit.Kit[T]
	stream    []byte // the block stream: BlockHeader|body, repeated, EOL-terminated
	artifacts *codec.Artifacts[T]
}

// NewEngine returns an Engine over stream (the bytes immediately following
// the MosaicHeader) using artifacts for any DICT/DICT256/FRAME
// dictionary lookups the block stream's methods require.
func NewEngine[T typekit.Numeric](kit typekit.Kit[T], stream []byte, artifacts *codec.Artifacts[T]) *Engine[T] {
	return &Engine[T]{kit: kit, stream: stream, artifacts: artifacts}
}

// block is one decoded block-stream entry: its header, its body slice, and
// the oid its first element occupies.
type block struct {
	header   format.BlockHeader
	body     []byte
	startOid int64
	nextOff  int
}

// nextBlock parses the block starting at off, or reports ok=false at EOL.
func (e *Engine[T]) nextBlock(off int, startOid int64) (block, bool) {
	bh := format.DecodeBlockHeader(e.stream[off:])
	if bh.IsEOL() {
		return block{}, false
	}

	bodyOff := off + format.BlockHeaderSize
	size := codec.BodySize(bh.Tag, e.artifacts, e.stream[bodyOff:], int(bh.Cnt))

	return block{
		header:   bh,
		body:     e.stream[bodyOff : bodyOff+size],
		startOid: startOid,
		nextOff:  bodyOff + size + int(bh.Pad),
	}, true
}

// walk invokes visit for every block in the stream, in order, until visit
// returns false or the stream is exhausted. visit receives the block's
// start oid, its header, and its body.
func (e *Engine[T]) walk(visit func(b block) bool) {
	off := 0
	oid := int64(0)

	for {
		b, ok := e.nextBlock(off, oid)
		if !ok {
			return
		}

		if !visit(b) {
			return
		}

		off = b.nextOff
		oid += int64(b.header.Cnt)
	}
}

// RangeSelect returns the oids of every element satisfying r, restricted to
// cand's candidate set. cand must be ascending.
//
// Before decoding a block, it consults codec.RangeBound for a cheap
// [lo, hi] summary: a block whose bound proves no overlap with r is
// skipped outright, and one whose bound proves total containment is
// emitted outright, both without a single per-row decode. The bound is
// never trusted when r.NilMatches is set, or when either endpoint is
// itself the nil sentinel -- a block-wide min/max cannot tell "this block
// has no nils" from "the bound happens to be extreme", so it must not
// short-circuit a nil-aware select.
func (e *Engine[T]) RangeSelect(r codec.Range[T], cand codec.Candidate) []int64 {
	var out []int64

	e.walk(func(b block) bool {
		if cand.Exhausted() {
			return false
		}

		if !r.NilMatches {
			if lo, hi, ok := codec.RangeBound(b.header.Tag, e.artifacts, b.body, int(b.header.Cnt)); ok &&
				!e.kit.IsNil(lo) && !e.kit.IsNil(hi) {
				switch boundOutcome(r, lo, hi) {
				case boundSkip:
					cand.SkipTo(b.startOid + int64(b.header.Cnt))

					return true
				case boundEmitAll:
					appendCandidatesInBlock(cand, b.startOid, int(b.header.Cnt), &out)

					return true
				}
			}
		}

		codec.Select(b.header.Tag, e.artifacts, b.body, int(b.header.Cnt), b.startOid, r, cand, &out)

		return true
	})

	return out
}

// boundResult classifies what a block-level [lo, hi] bound proves about a
// Range, relative to Anti inversion.
type boundResult int

const (
	boundUnknown boundResult = iota
	boundSkip
	boundEmitAll
)

// boundOutcome compares r's bounds against a block's [lo, hi] value bound.
func boundOutcome[T typekit.Numeric](r codec.Range[T], lo, hi T) boundResult {
	noOverlap := false
	if r.Hi != nil {
		if r.HiIncl {
			noOverlap = noOverlap || lo > *r.Hi
		} else {
			noOverlap = noOverlap || lo >= *r.Hi
		}
	}
	if r.Lo != nil {
		if r.LoIncl {
			noOverlap = noOverlap || hi < *r.Lo
		} else {
			noOverlap = noOverlap || hi <= *r.Lo
		}
	}

	fullyInside := true
	if r.Lo != nil {
		if r.LoIncl {
			fullyInside = fullyInside && lo >= *r.Lo
		} else {
			fullyInside = fullyInside && lo > *r.Lo
		}
	}
	if r.Hi != nil {
		if r.HiIncl {
			fullyInside = fullyInside && hi <= *r.Hi
		} else {
			fullyInside = fullyInside && hi < *r.Hi
		}
	}

	if r.Anti {
		switch {
		case fullyInside:
			return boundSkip
		case noOverlap:
			return boundEmitAll
		default:
			return boundUnknown
		}
	}

	switch {
	case noOverlap:
		return boundSkip
	case fullyInside:
		return boundEmitAll
	default:
		return boundUnknown
	}
}

// appendCandidatesInBlock appends every candidate oid in [startOid,
// startOid+cnt) to out, advancing cand past the block -- the "whole block
// matches" counterpart to codec.Select's per-row test, used once
// boundOutcome has already proven every value in the block satisfies r.
func appendCandidatesInBlock(cand codec.Candidate, startOid int64, cnt int, out *[]int64) {
	end := startOid + int64(cnt)

	for {
		oid, ok := cand.Peek()
		if !ok || oid >= end {
			return
		}

		if oid < startOid {
			cand.SkipTo(startOid)

			continue
		}

		cand.Next()
		*out = append(*out, oid)
	}
}

// ThetaSelect converts a strict theta comparison (<, <=, >, >=, !=) against
// bound into a Range and delegates to RangeSelect: strict comparisons set
// an exclusive bound (LoIncl/HiIncl false) on one side, non-strict ones an
// inclusive bound, and != is the Anti range [bound, bound].
type ThetaOp int

const (
	ThetaLT ThetaOp = iota
	ThetaLE
	ThetaGT
	ThetaGE
	ThetaNE
)

func (e *Engine[T]) ThetaSelect(op ThetaOp, bound T, cand codec.Candidate) []int64 {
	var r codec.Range[T]

	switch op {
	case ThetaLT:
		r = codec.Range[T]{Hi: &bound, HiIncl: false}
	case ThetaLE:
		r = codec.Range[T]{Hi: &bound, HiIncl: true}
	case ThetaGT:
		r = codec.Range[T]{Lo: &bound, LoIncl: false}
	case ThetaGE:
		r = codec.Range[T]{Lo: &bound, LoIncl: true}
	case ThetaNE:
		r = codec.Range[T]{Lo: &bound, Hi: &bound, LoIncl: true, HiIncl: true, Anti: true}
	}

	return e.RangeSelect(r, cand)
}

// Project returns the (oid, value) pairs for every candidate in cand,
// decoding only the requested positions.
func (e *Engine[T]) Project(cand codec.Candidate) ([]int64, []T) {
	var oids []int64
	var values []T

	e.walk(func(b block) bool {
		if cand.Exhausted() {
			return false
		}

		codec.Project(b.header.Tag, e.artifacts, b.body, int(b.header.Cnt), b.startOid, cand, func(oid int64, v T) {
			oids = append(oids, oid)
			values = append(values, v)
		})

		return true
	})

	return oids, values
}

// JoinCompressedOuter implements the compressed-outer/uncompressed-inner
// join shape: e is the compressed side, inner is a plain decoded slice
// keyed by oid (innerStartOid + index). Every (outer, inner) pair with
// equal values and an outer oid in outerCand is emitted; nilMatches
// controls whether a nil on both sides counts as equal (SQL's default is
// no).
func (e *Engine[T]) JoinCompressedOuter(outerCand codec.Candidate, inner []T, innerStartOid int64, nilMatches bool) []codec.Pair {
	index := codec.NewValueIndex(e.kit, len(inner))
	for i, v := range inner {
		index.Add(v, innerStartOid+int64(i))
	}

	var pairs []codec.Pair

	e.walk(func(b block) bool {
		if outerCand.Exhausted() {
			return false
		}

		codec.Project(b.header.Tag, e.artifacts, b.body, int(b.header.Cnt), b.startOid, outerCand, func(oid int64, v T) {
			if e.kit.IsNil(v) && !nilMatches {
				return
			}

			for _, rOid := range index.Lookup(v) {
				pairs = append(pairs, codec.Pair{Left: oid, Right: rOid})
			}
		})

		return true
	})

	return pairs
}

// JoinUncompressedOuter implements the dual shape: outer is a plain decoded
// slice (outerStartOid + index), e is the compressed inner side restricted
// to innerCand. Unlike JoinCompressedOuter, the compressed side here is the
// one being probed, so it is driven block by block through codec.JoinInner
// instead of codec.Project: RLE, DICT/DICT256, and a residual-free LINEAR
// block answer the join without ever materialising their decoded values,
// and every other method falls back to the same decode-on-demand cost
// Project already pays.
func (e *Engine[T]) JoinUncompressedOuter(outer []T, outerStartOid int64, innerCand codec.Candidate, nilMatches bool) []codec.Pair {
	index := codec.NewValueIndex(e.kit, len(outer))
	for i, v := range outer {
		index.Add(v, outerStartOid+int64(i))
	}

	var pairs []codec.Pair

	e.walk(func(b block) bool {
		if innerCand.Exhausted() {
			return false
		}

		pairs = append(pairs, codec.JoinInner(b.header.Tag, e.artifacts, b.body, int(b.header.Cnt), b.startOid, innerCand, index, nilMatches)...)

		return true
	})

	return pairs
}
