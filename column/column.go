// Package column is colmosaic's public façade: Compress and Decompress
// wire typekit, dict, codec, plan, format, and scan together into the
// single entry point an analytical-database storage layer calls.
package column

import (
	"fmt"

	"github.com/colmosaic/mosaic/codec"
	"github.com/colmosaic/mosaic/dict"
	"github.com/colmosaic/mosaic/errs"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/plan"
	"github.com/colmosaic/mosaic/scan"
	"github.com/colmosaic/mosaic/typekit"
)

// Column is a compressed mosaic heap for one column of type T, held in
// memory as a MosaicHeader plus the block stream and side dictionaries it
// references.
type Column[T typekit.Numeric] struct {
	kit       typekit.Kit[T]
	n         int64
	header    *format.Header
	stream    []byte
	artifacts *codec.Artifacts[T]
}

// Len returns the column's logical element count.
func (c *Column[T]) Len() int64 { return c.n }

// Header exposes the column's MosaicHeader, mainly for diagnostics and
// tests; callers driving scans should prefer Engine.
func (c *Column[T]) Header() *format.Header { return c.header }

// Compress runs the planner over values and assembles the resulting
// strategy list into a block stream, returning a ready-to-scan Column.
// kit must match T; callers get it from one of typekit's *Kit
// constructors (Int8Kit ... Float64Kit).
func Compress[T typekit.Numeric](kit typekit.Kit[T], values []T, opts ...plan.Option) (*Column[T], error) {
	if len(values) == 0 {
		return nil, errs.ErrCannotCompress
	}

	p, err := plan.New(kit, opts...)
	if err != nil {
		return nil, err
	}

	pl, err := p.Run(values)
	if err != nil {
		return nil, err
	}

	stream, err := buildStream(values, pl.Strategy, pl.Artifacts)
	if err != nil {
		return nil, err
	}

	uncompressed := len(values) * kit.Width()
	compressed := len(stream) + estimateDictBytes(pl.Artifacts)

	if compressed >= uncompressed {
		return nil, errs.ErrNoReduction
	}

	pl.Header.Ratio = float32(uncompressed) / float32(compressed)

	return &Column[T]{
		kit:       kit,
		n:         int64(len(values)),
		header:    pl.Header,
		stream:    stream,
		artifacts: pl.Artifacts,
	}, nil
}

func estimateDictBytes[T typekit.Numeric](art *codec.Artifacts[T]) int {
	return len(dict.EncodeSorted(art.Dict, art.Kit)) +
		len(dict.EncodeSorted(art.Dict256, art.Kit)) +
		art.Frame.Len()*8
}

// buildStream runs Pass B: it compresses every strategy entry via
// codec.Compress and concatenates the resulting blocks, each padded to a
// 4-byte boundary so the next block header starts aligned.
func buildStream[T typekit.Numeric](values []T, strategy []plan.StrategyEntry, art *codec.Artifacts[T]) ([]byte, error) {
	var stream []byte
	var hdrBuf [format.BlockHeaderSize]byte

	for _, se := range strategy {
		if se.Len > format.MaxBlockCount {
			return nil, fmt.Errorf("column: block length %d exceeds %d: %w", se.Len, format.MaxBlockCount, errs.ErrInvariant)
		}

		body, err := codec.Compress(se.Method, art, values, se.Pos, se.Len)
		if err != nil {
			return nil, err
		}

		pad := (4 - (format.BlockHeaderSize+len(body))%4) % 4

		format.EncodeBlockHeader(hdrBuf[:], format.BlockHeader{Tag: se.Method, Cnt: uint32(se.Len), Pad: uint8(pad)})
		stream = append(stream, hdrBuf[:]...)
		stream = append(stream, body...)
		stream = append(stream, make([]byte, pad)...)
	}

	format.EncodeBlockHeader(hdrBuf[:], format.EOLHeader)
	stream = append(stream, hdrBuf[:]...)

	return stream, nil
}

// Decompress fully materializes the column back into a plain slice, for
// callers that genuinely need every value rather than a selective scan.
func (c *Column[T]) Decompress() []T {
	out := make([]T, 0, c.n)

	off := 0
	for {
		bh := format.DecodeBlockHeader(c.stream[off:])
		if bh.IsEOL() {
			break
		}

		bodyOff := off + format.BlockHeaderSize
		size := codec.BodySize(bh.Tag, c.artifacts, c.stream[bodyOff:], int(bh.Cnt))
		body := c.stream[bodyOff : bodyOff+size]

		out = append(out, codec.Decompress(bh.Tag, c.artifacts, body, int(bh.Cnt))...)

		off = bodyOff + size + int(bh.Pad)
	}

	return out
}

// Engine returns a scan.Engine over c's block stream, for selective
// range/theta select, project, and join access.
func (c *Column[T]) Engine() *scan.Engine[T] {
	return scan.NewEngine(c.kit, c.stream, c.artifacts)
}
