// Package plan implements the two-pass driver that turns a column of
// values into a strategy list of (method, pos, len) records and the side
// dictionaries those methods draw from.
//
// Pass 0 runs a full pre-scan to seed the DICT and DICT256 distinct-value
// builders (DICT256's top-capLimit survivor set is frozen immediately
// after, so Pass A's admission checks can never admit a value that will
// not survive into the final dictionary). Pass A then walks the column
// once, left to right, scoring every enabled method's Estimate at the
// current cursor via the normalised-cost formula, committing
// the winner's post-estimate hook, and advancing past it. Pass B (Compress)
// is a thin second walk over the now-fixed strategy list, performed by the
// column package once the planner returns.
package plan

import (
	"math"

	"github.com/colmosaic/mosaic/codec"
	"github.com/colmosaic/mosaic/dict"
	"github.com/colmosaic/mosaic/errs"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/internal/options"
	"github.com/colmosaic/mosaic/typekit"
)

// Config holds the planner's tunables, set via functional Option values,
// using the same options.Option[T] pattern as the rest of the module.
type Config struct {
	MethodMask format.Mask
	Dict256Cap int
	FrameCap   int
}

func defaultConfig() Config {
	return Config{MethodMask: format.All, Dict256Cap: 256, FrameCap: 256}
}

// Option configures a Planner's Config.
type Option = options.Option[*Config]

// WithMethodMask restricts the planner to the given method mask.
// Methods inapplicable to the column's type are dropped regardless.
func WithMethodMask(mask format.Mask) Option {
	return options.NoError(func(c *Config) { c.MethodMask = mask })
}

// WithDict256Cap overrides DICT256's dictionary size cap (256 by default;
// exposed for tests that want a smaller cap to exercise eviction logic
// without building a 256+ distinct-value fixture).
func WithDict256Cap(n int) Option {
	return options.NoError(func(c *Config) { c.Dict256Cap = n })
}

// WithFrameCap overrides FRAME's shared delta-dictionary cap (256 by
// default; see DESIGN.md).
func WithFrameCap(n int) Option {
	return options.NoError(func(c *Config) { c.FrameCap = n })
}

// StrategyEntry is one committed (method, position, length) record from
// Pass A, the unit plan.Plan.Strategy is built from.
type StrategyEntry struct {
	Method format.Method
	Pos    int
	Len    int
}

// Plan is Planner.Run's result: the populated header skeleton, the
// strategy list driving Pass B, and the finalized side-dictionary
// artifacts every DICT/DICT256/FRAME block must be compressed and decoded
// against.
type Plan[T typekit.Numeric] struct {
	Header    *format.Header
	Strategy  []StrategyEntry
	Artifacts *codec.Artifacts[T]
}

// Planner drives Pass 0/A for one column of type T.
type Planner[T typekit.Numeric] struct {
	kit typekit.Kit[T]
	cfg Config
}

// New returns a Planner for kit, configured by opts.
func New[T typekit.Numeric](kit typekit.Kit[T], opts ...Option) (*Planner[T], error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	mask := format.ApplicableMask(cfg.MethodMask, kit.IsInteger())
	if mask == 0 {
		return nil, errs.ErrEmptyMethodMask
	}
	cfg.MethodMask = mask

	return &Planner[T]{kit: kit, cfg: cfg}, nil
}

// Run executes Pass 0 and Pass A over values, returning the strategy list
// and finalized artifacts Pass B needs. It never allocates the vmosaic
// heap itself -- that is column.Compress's job once it has the strategy
// list in hand.
func (p *Planner[T]) Run(values []T) (*Plan[T], error) {
	if len(values) == 0 {
		return nil, errs.ErrCannotCompress
	}

	mask := p.cfg.MethodMask

	dictBuilder := dict.NewBuilder(p.kit)
	dict256Builder := dict.NewCappedBuilder(p.kit, p.cfg.Dict256Cap)

	if mask.Has(format.Dict) || mask.Has(format.DICT256) {
		for _, v := range values {
			if mask.Has(format.Dict) {
				dictBuilder.Add(v)
			}
			if mask.Has(format.DICT256) {
				dict256Builder.Add(v)
			}
		}
	}
	dict256Builder.Freeze()

	frameDict := codec.NewFrameDict(p.cfg.FrameCap)

	st := codec.NewEstimateState(p.kit)
	st.DictBuilder = dictBuilder
	st.Dict256Builder = dict256Builder
	st.FrameDict = frameDict

	var blockCount, elemCount [format.NumMethods]int64
	var strategy []StrategyEntry

	pos := 0
	for pos < len(values) {
		best := format.Method(0)
		var bestResult codec.Result
		bestCost := math.MaxFloat64
		found := false

		for m := format.Method(0); m < format.NumMethods; m++ {
			if !mask.Has(m) {
				continue
			}

			r := codec.Estimate(m, st, values, pos)
			if !r.Applicable {
				continue
			}
			if codec.RejectUnlessRaw(m, r, p.kit.Width()) {
				continue
			}

			cost := r.NormalizedCost(st.MaxCnt)
			// On an exact cost tie, prefer the candidate covering more
			// elements (fewer, larger blocks beat more, smaller ones at
			// equal bits/element), falling back to enum order (m already
			// walks low to high, so the first-seen candidate at a given
			// cost already wins ties where Len is also equal).
			if !found || cost < bestCost || (cost == bestCost && r.Len > bestResult.Len) {
				found = true
				bestCost = cost
				best = m
				bestResult = r
			}
		}

		if !found {
			if !mask.Has(format.Raw) {
				return nil, errs.ErrRawDisabled
			}

			best = format.Raw
			bestResult = codec.RawEstimate(p.kit, values, pos)
		}

		if bestResult.Len > st.MaxCnt {
			st.MaxCnt = bestResult.Len
		}

		codec.Commit(best, st, values, pos, bestResult.Len)

		// Merge into the previous strategy entry when it used the same
		// method and the combined block still fits the 24-bit Cnt field:
		// every method's Compress re-derives its encoding fresh from
		// (values, pos, len), so widening an already-committed block's Len
		// is always safe, never a correctness hazard, only a potentially
		// suboptimal one Pass A's greedy per-position choice can't see.
		if last := len(strategy) - 1; last >= 0 && strategy[last].Method == best &&
			strategy[last].Len+bestResult.Len <= format.MaxBlockCount {
			strategy[last].Len += bestResult.Len
		} else {
			strategy = append(strategy, StrategyEntry{Method: best, Pos: pos, Len: bestResult.Len})
			blockCount[best]++
		}

		elemCount[best] += int64(bestResult.Len)
		pos += bestResult.Len
	}

	header := format.NewHeader()
	header.NBlocks = uint32(len(strategy))

	for m := format.Method(0); m < format.NumMethods; m++ {
		if blockCount[m] > 0 {
			header.EnableMethod(m, blockCount[m], elemCount[m])
		}
	}

	finalDict := dictBuilder.Finalize()
	finalDict256 := dict256Builder.Finalize()

	if mask.Has(format.Dict) {
		header.SetDictKeyBits(dict.BitsExtended(len(finalDict)), false)
		header.LengthDict = uint32(len(finalDict))
	}
	if mask.Has(format.DICT256) {
		header.SetDict256KeyBits(dict.BitsExtended(len(finalDict256)), false)
		header.LengthDict256 = uint32(len(finalDict256))
	}

	header.FrameBits = frameDict.Bits()
	header.FrameLength = uint32(frameDict.Len())

	artifacts := &codec.Artifacts[T]{
		Kit:     p.kit,
		Dict:    finalDict,
		Dict256: finalDict256,
		Frame:   frameDict,
	}

	return &Plan[T]{Header: header, Strategy: strategy, Artifacts: artifacts}, nil
}
