package column

import (
	"encoding/binary"
	"fmt"

	"github.com/colmosaic/mosaic/codec"
	"github.com/colmosaic/mosaic/dict"
	"github.com/colmosaic/mosaic/errs"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/internal/pool"
	"github.com/colmosaic/mosaic/typekit"
)

// Bytes serializes c into a single contiguous buffer: MosaicHeader, then
// the DICT array, the DICT256 array, the FRAME delta dictionary, and
// finally the block stream. Both dictionary arrays are written through
// dict.EncodeSorted's self-delta varint encoding, so Header.BitsDict/
// BitsDict256 always carry the delta-encoded flag here.
//
// The assembly buffer comes from the package's blob pool, the same one
// a storage layer calling Bytes() in a hot write path would otherwise
// allocate and discard on every call.
func (c *Column[T]) Bytes() []byte {
	dictBytes := dict.EncodeSorted(c.artifacts.Dict, c.kit)
	dict256Bytes := dict.EncodeSorted(c.artifacts.Dict256, c.kit)
	frameBytes := encodeFrameValues(c.artifacts.Frame)

	h := *c.header
	h.SetDictKeyBits(h.DictKeyBits(), true)
	h.SetDict256KeyBits(h.Dict256KeyBits(), true)
	h.PosDict = 0
	h.DictByteLen = uint32(len(dictBytes))
	h.PosDict256 = uint32(len(dictBytes))
	h.Dict256ByteLen = uint32(len(dict256Bytes))
	h.FramePos = uint32(len(dictBytes) + len(dict256Bytes))

	total := format.HeaderSize + len(dictBytes) + len(dict256Bytes) + len(frameBytes) + len(c.stream)

	bb := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(bb)
	bb.Grow(total)

	bb.MustWrite(h.Bytes())
	bb.MustWrite(dictBytes)
	bb.MustWrite(dict256Bytes)
	bb.MustWrite(frameBytes)
	bb.MustWrite(c.stream)

	out := make([]byte, bb.Len())
	copy(out, bb.Bytes())

	return out
}

// Load reverses Bytes, reconstructing a Column of n elements of type T.
func Load[T typekit.Numeric](kit typekit.Kit[T], data []byte, n int64) (*Column[T], error) {
	h, err := format.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if err := h.Validate(n); err != nil {
		return nil, err
	}

	rest := data[format.HeaderSize:]

	dictStart := h.PosDict
	dictEnd := dictStart + h.DictByteLen
	dict256Start := h.PosDict256
	dict256End := dict256Start + h.Dict256ByteLen
	frameStart := h.FramePos
	frameEnd := frameStart + uint32(h.FrameLength)*8

	if int(frameEnd) > len(rest) {
		return nil, fmt.Errorf("column: dictionary section overruns payload: %w", errs.ErrInvariant)
	}

	dictionary := dict.DecodeSorted(rest[dictStart:dictEnd], int(h.LengthDict), kit)
	dictionary256 := dict.DecodeSorted(rest[dict256Start:dict256End], int(h.LengthDict256), kit)
	frameDict := decodeFrameValues(rest[frameStart:frameEnd], int(h.FrameLength))

	stream := rest[frameEnd:]

	return &Column[T]{
		kit:    kit,
		n:      n,
		header: h,
		stream: stream,
		artifacts: &codec.Artifacts[T]{
			Kit:     kit,
			Dict:    dictionary,
			Dict256: dictionary256,
			Frame:   frameDict,
		},
	}, nil
}

// encodeFrameValues writes a FrameDict's raw delta bit patterns as
// fixed-width 8-byte little-endian entries -- unlike DICT/DICT256's sorted
// arrays, frame deltas have no natural ascending order to self-delta
// encode against, so they are stored plainly.
func encodeFrameValues(f *codec.FrameDict) []byte {
	values := f.Values()
	out := make([]byte, len(values)*8)

	for i, v := range values {
		binary.LittleEndian.PutUint64(out[i*8:], v)
	}

	return out
}

func decodeFrameValues(data []byte, count int) *codec.FrameDict {
	f := codec.NewFrameDict(count)
	if count == 0 {
		return f
	}
	if count > 256 {
		count = 256 // refuse past the cap per FrameDict's own invariant
	}

	for i := 0; i < count && (i+1)*8 <= len(data); i++ {
		f.Insert(binary.LittleEndian.Uint64(data[i*8:]))
	}

	return f
}
