package codec

import (
	"github.com/colmosaic/mosaic/bitvec"
	"github.com/colmosaic/mosaic/dict"
	"github.com/colmosaic/mosaic/errs"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

// BodySize returns the number of block-body bytes method m occupies for a
// block of cnt elements, reading whatever self-describing prefix bytes
// (DELTA/LINEAR's bitsUsed, PREFIX's lowBits) the layout embeds. body must
// have at least that prefix available; scan.Engine always hands it the
// full remainder of the heap from the block's body offset onward, so this
// never reads past the real body.
func BodySize[T typekit.Numeric](m format.Method, art *Artifacts[T], body []byte, cnt int) int {
	w := art.Kit.Width()

	switch m {
	case format.Raw:
		return cnt * w
	case format.RLE:
		return w
	case format.Dict:
		return bitvec.SizeBytes(cnt, int(dict.BitsExtended(len(art.Dict))))
	case format.DICT256:
		return bitvec.SizeBytes(cnt, int(dict.BitsExtended(len(art.Dict256))))
	case format.Delta:
		bitsUsed := int(body[w])

		return w + 1 + bitvec.SizeBytes(cnt-1, bitsUsed)
	case format.Linear:
		bitsUsed := int(body[2*w])

		return 2*w + 1 + bitvec.SizeBytes(cnt, bitsUsed)
	case format.Frame:
		return w + bitvec.SizeBytes(cnt, int(art.Frame.Bits()))
	case format.Prefix:
		lowBits := int(body[0])
		prefixWidth := art.Kit.BitWidth() - lowBits
		prefixSize := bitvec.SizeBytes(1, prefixWidth)

		return 1 + prefixSize + bitvec.SizeBytes(cnt, lowBits)
	default:
		return 0
	}
}

// Estimate dispatches to the named method's Pass-A estimator.
// Unknown or inapplicable methods return a zero Result (Applicable=false).
func Estimate[T typekit.Numeric](m format.Method, st *EstimateState[T], values []T, pos int) Result {
	switch m {
	case format.Raw:
		return RawEstimate(st.Kit, values, pos)
	case format.RLE:
		return RleEstimate(st.Kit, values, pos)
	case format.Dict:
		return DictEstimate(st.DictBuilder, values, pos, false)
	case format.DICT256:
		return DictEstimate(st.Dict256Builder, values, pos, true)
	case format.Delta:
		return DeltaEstimate(st.Kit, values, pos)
	case format.Linear:
		return LinearEstimate(st.Kit, values, pos)
	case format.Frame:
		return FrameEstimate(st.Kit, st.FrameDict, values, pos)
	case format.Prefix:
		return PrefixEstimate(st.Kit, values, pos)
	default:
		return Result{}
	}
}

// Commit runs m's post-estimate hook, admitting the block's
// values into whatever shared side-dictionary it draws from. RAW, RLE,
// DELTA, LINEAR, and PREFIX have no side state and no-op.
func Commit[T typekit.Numeric](m format.Method, st *EstimateState[T], values []T, pos, n int) {
	switch m {
	case format.Dict:
		DictCommit(st.DictBuilder, values, pos, n)
	case format.DICT256:
		DictCommit(st.Dict256Builder, values, pos, n)
	case format.Frame:
		FrameCommit(st.Kit, st.FrameDict, values, pos, n)
	}
}

// Compress dispatches to the named method's Pass-B compressor, returning
// the block body (everything after the common block header).
func Compress[T typekit.Numeric](m format.Method, art *Artifacts[T], values []T, pos, n int) ([]byte, error) {
	switch m {
	case format.Raw:
		return RawCompress(art.Kit, values, pos, n), nil
	case format.RLE:
		return RleCompress(art.Kit, values[pos]), nil
	case format.Dict:
		return DictCompress(art.Kit, art.Dict, int(dict.BitsExtended(len(art.Dict))), values, pos, n), nil
	case format.DICT256:
		return DictCompress(art.Kit, art.Dict256, int(dict.BitsExtended(len(art.Dict256))), values, pos, n), nil
	case format.Delta:
		return DeltaCompress(art.Kit, values, pos, n), nil
	case format.Linear:
		return LinearCompress(art.Kit, values, pos, n), nil
	case format.Frame:
		return FrameCompress(art.Kit, art.Frame, values, pos, n), nil
	case format.Prefix:
		return PrefixCompress(art.Kit, values, pos, n), nil
	default:
		return nil, errs.ErrCannotCompress
	}
}

// Decompress dispatches to the named method's decompressor, reconstructing
// cnt values from body.
func Decompress[T typekit.Numeric](m format.Method, art *Artifacts[T], body []byte, cnt int) []T {
	switch m {
	case format.Raw:
		return RawDecompress(art.Kit, body, cnt)
	case format.RLE:
		return RleDecompress(art.Kit, body, cnt)
	case format.Dict:
		return DictDecompress(art.Dict, int(dict.BitsExtended(len(art.Dict))), body, cnt)
	case format.DICT256:
		return DictDecompress(art.Dict256, int(dict.BitsExtended(len(art.Dict256))), body, cnt)
	case format.Delta:
		return DeltaDecompress(art.Kit, body, cnt)
	case format.Linear:
		return LinearDecompress(art.Kit, body, cnt)
	case format.Frame:
		return FrameDecompress(art.Kit, art.Frame, body, cnt)
	case format.Prefix:
		return PrefixDecompress(art.Kit, body, cnt)
	default:
		return nil
	}
}

// Select dispatches to the named method's decode-on-demand range/theta
// select, appending matching oids to out.
func Select[T typekit.Numeric](m format.Method, art *Artifacts[T], body []byte, cnt int, startOid int64, r Range[T], cand Candidate, out *[]int64) {
	switch m {
	case format.Raw:
		RawSelect(art.Kit, body, cnt, startOid, r, cand, out)
	case format.RLE:
		RleSelect(art.Kit, body, cnt, startOid, r, cand, out)
	case format.Dict:
		DictSelect(art.Kit, art.Dict, int(dict.BitsExtended(len(art.Dict))), body, cnt, startOid, r, cand, out)
	case format.DICT256:
		DictSelect(art.Kit, art.Dict256, int(dict.BitsExtended(len(art.Dict256))), body, cnt, startOid, r, cand, out)
	case format.Delta:
		DeltaSelect(art.Kit, body, cnt, startOid, r, cand, out)
	case format.Linear:
		LinearSelect(art.Kit, body, cnt, startOid, r, cand, out)
	case format.Frame:
		FrameSelect(art.Kit, art.Frame, body, cnt, startOid, r, cand, out)
	case format.Prefix:
		PrefixSelect(art.Kit, body, cnt, startOid, r, cand, out)
	}
}

// Project dispatches to the named method's decode-on-demand projection,
// emitting (oid, value) pairs for every requested candidate.
func Project[T typekit.Numeric](m format.Method, art *Artifacts[T], body []byte, cnt int, startOid int64, cand Candidate, emit func(oid int64, v T)) {
	switch m {
	case format.Raw:
		RawProject(art.Kit, body, cnt, startOid, cand, emit)
	case format.RLE:
		RleProject(art.Kit, body, cnt, startOid, cand, emit)
	case format.Dict:
		DictProject(art.Dict, int(dict.BitsExtended(len(art.Dict))), body, cnt, startOid, cand, emit)
	case format.DICT256:
		DictProject(art.Dict256, int(dict.BitsExtended(len(art.Dict256))), body, cnt, startOid, cand, emit)
	case format.Delta:
		DeltaProject(art.Kit, body, cnt, startOid, cand, emit)
	case format.Linear:
		LinearProject(art.Kit, body, cnt, startOid, cand, emit)
	case format.Frame:
		FrameProject(art.Kit, art.Frame, body, cnt, startOid, cand, emit)
	case format.Prefix:
		PrefixProject(art.Kit, body, cnt, startOid, cand, emit)
	}
}
