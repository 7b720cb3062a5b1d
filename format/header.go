package format

import (
	"encoding/binary"
	"fmt"
	"math"
)

// HeaderVersion is the current MosaicHeader wire version.
const HeaderVersion uint32 = 1

// dictFlagDeltaEncoded marks, in the high bit of BitsDict/BitsDict256, that
// the corresponding vmosaic dictionary array was itself DELTA-encoded
// before being written out (see DESIGN.md's "Dictionary self-delta-encoding"
// decision). The remaining 7 bits hold the actual key bit width, which
// covers every width up to 64 for both DICT and DICT256, so bit 7 is
// always the flag.
const dictFlagDeltaEncoded = 0x80

// Header is the per-column compressed-heap root. It precedes
// the block stream and is padded to an 8-byte boundary so the first block
// starts aligned.
type Header struct {
	Version uint32
	NBlocks uint32
	Ratio   float32 // uncompressed/compressed, diagnostic only

	// Blks and Elms are indexed by Method (0..NumMethods-1). A value of -1
	// marks the method as disabled for this column.
	Blks [NumMethods]int64
	Elms [NumMethods]int64

	BitsDict   uint8 // final key width for DICT, high bit = delta-encoded-dictionary flag
	PosDict    uint32
	LengthDict uint32
	// DictByteLen is the serialized byte length of the DICT dictionary
	// array in the vmosaic heap. Needed because dict.EncodeSorted's
	// self-delta varint encoding has no fixed per-entry width, unlike the
	// fixed-width FRAME dictionary below -- LengthDict alone cannot tell a
	// reader where the array ends.
	DictByteLen uint32

	BitsDict256   uint8 // final key width for DICT256, 1..8, same flag convention
	PosDict256    uint32
	LengthDict256 uint32
	// Dict256ByteLen is DictByteLen's DICT256 counterpart.
	Dict256ByteLen uint32

	// FrameBits, FramePos, and FrameLength describe the per-column FRAME
	// delta dictionary. Spec §3.5/§5 refer to "header.framebits" and say
	// the frame dictionary "lives in the MosaicHeader", but §3.3's field
	// list omits it; these three fields fill that gap (see DESIGN.md).
	// The dictionary values themselves are stored in the vmosaic heap
	// alongside DICT/DICT256, at FramePos (a byte offset from the end of
	// the header), FrameLength entries long, each 8 bytes wide. FrameBits
	// is the width of the per-element codes FRAME blocks index it with.
	FrameBits   uint8
	FramePos    uint32
	FrameLength uint32
}

// NewHeader returns a Header with every method disabled (Blks/Elms == -1),
// ready for the planner to fill in as it assigns methods.
func NewHeader() *Header {
	h := &Header{Version: HeaderVersion}
	for i := range h.Blks {
		h.Blks[i] = -1
		h.Elms[i] = -1
	}

	return h
}

// DictEncoded reports whether the DICT dictionary array was itself
// DELTA-encoded before being stored in the vmosaic heap.
func (h *Header) DictEncoded() bool { return h.BitsDict&dictFlagDeltaEncoded != 0 }

// Dict256Encoded is DictEncoded's DICT256 counterpart.
func (h *Header) Dict256Encoded() bool { return h.BitsDict256&dictFlagDeltaEncoded != 0 }

// DictKeyBits returns the actual key bit width for DICT, masking off the
// self-encoding flag bit.
func (h *Header) DictKeyBits() uint8 { return h.BitsDict &^ dictFlagDeltaEncoded }

// Dict256KeyBits is DictKeyBits's DICT256 counterpart.
func (h *Header) Dict256KeyBits() uint8 { return h.BitsDict256 &^ dictFlagDeltaEncoded }

// SetDictKeyBits sets DICT's key width and sets or clears the
// delta-encoded flag according to deltaEncoded.
func (h *Header) SetDictKeyBits(bits uint8, deltaEncoded bool) {
	h.BitsDict = bits &^ dictFlagDeltaEncoded
	if deltaEncoded {
		h.BitsDict |= dictFlagDeltaEncoded
	}
}

// SetDict256KeyBits is SetDictKeyBits's DICT256 counterpart.
func (h *Header) SetDict256KeyBits(bits uint8, deltaEncoded bool) {
	h.BitsDict256 = bits &^ dictFlagDeltaEncoded
	if deltaEncoded {
		h.BitsDict256 |= dictFlagDeltaEncoded
	}
}

// EnableMethod marks m as used, recording the number of blocks and
// elements the planner ultimately assigned to it. Called once per method
// by Planner.Run, after Pass A has fully run.
func (h *Header) EnableMethod(m Method, blocks, elements int64) {
	h.Blks[m] = blocks
	h.Elms[m] = elements
}

// MethodEnabled reports whether m was used at all in this heap.
func (h *Header) MethodEnabled(m Method) bool {
	return m < NumMethods && h.Blks[m] >= 0
}

// HeaderSize is the padded, 8-byte-aligned wire size of Header.
const HeaderSize = 4 + 4 + 4 + // Version, NBlocks, Ratio
	8*NumMethods + 8*NumMethods + // Blks, Elms
	1 + 4 + 4 + 4 + // BitsDict, PosDict, LengthDict, DictByteLen
	1 + 4 + 4 + 4 + // BitsDict256, PosDict256, LengthDict256, Dict256ByteLen
	1 + 4 + 4 + // FrameBits, FramePos, FrameLength
	1 // padding to the next 8-byte boundary (175 bytes of fields -> 176)

// Bytes serializes h into a little-endian HeaderSize-byte slice, padded to
// an 8-byte boundary so the first block can start aligned.
func (h *Header) Bytes() []byte {
	buf := make([]byte, HeaderSize)
	off := 0

	binary.LittleEndian.PutUint32(buf[off:], h.Version)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], h.NBlocks)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(h.Ratio))
	off += 4

	for _, v := range h.Blks {
		binary.LittleEndian.PutUint64(buf[off:], uint64(v))
		off += 8
	}

	for _, v := range h.Elms {
		binary.LittleEndian.PutUint64(buf[off:], uint64(v))
		off += 8
	}

	buf[off] = h.BitsDict
	off++
	binary.LittleEndian.PutUint32(buf[off:], h.PosDict)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], h.LengthDict)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], h.DictByteLen)
	off += 4

	buf[off] = h.BitsDict256
	off++
	binary.LittleEndian.PutUint32(buf[off:], h.PosDict256)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], h.LengthDict256)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], h.Dict256ByteLen)
	off += 4

	buf[off] = h.FrameBits
	off++
	binary.LittleEndian.PutUint32(buf[off:], h.FramePos)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], h.FrameLength)
	off += 4

	return buf
}

// ParseHeader decodes a Header from the front of data. data must be at
// least HeaderSize bytes long.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("format: header requires %d bytes, got %d", HeaderSize, len(data))
	}

	h := &Header{}
	off := 0

	h.Version = binary.LittleEndian.Uint32(data[off:])
	off += 4
	h.NBlocks = binary.LittleEndian.Uint32(data[off:])
	off += 4
	h.Ratio = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	off += 4

	for i := range h.Blks {
		h.Blks[i] = int64(binary.LittleEndian.Uint64(data[off:]))
		off += 8
	}

	for i := range h.Elms {
		h.Elms[i] = int64(binary.LittleEndian.Uint64(data[off:]))
		off += 8
	}

	h.BitsDict = data[off]
	off++
	h.PosDict = binary.LittleEndian.Uint32(data[off:])
	off += 4
	h.LengthDict = binary.LittleEndian.Uint32(data[off:])
	off += 4
	h.DictByteLen = binary.LittleEndian.Uint32(data[off:])
	off += 4

	h.BitsDict256 = data[off]
	off++
	h.PosDict256 = binary.LittleEndian.Uint32(data[off:])
	off += 4
	h.LengthDict256 = binary.LittleEndian.Uint32(data[off:])
	off += 4
	h.Dict256ByteLen = binary.LittleEndian.Uint32(data[off:])
	off += 4

	h.FrameBits = data[off]
	off++
	h.FramePos = binary.LittleEndian.Uint32(data[off:])
	off += 4
	h.FrameLength = binary.LittleEndian.Uint32(data[off:])
	off += 4

	return h, nil
}

// Validate checks the internal consistency invariants a reader should
// apply before trusting a loaded header: Σ Elms over enabled methods must
// account for every element the header claims, and DICT256's dictionary
// must never exceed 256 entries.
func (h *Header) Validate(n int64) error {
	if h.Version != HeaderVersion {
		return fmt.Errorf("format: unsupported header version %d", h.Version)
	}

	var total int64
	for m := Method(0); m < NumMethods; m++ {
		if h.Blks[m] < 0 {
			continue
		}
		total += h.Elms[m]
	}

	if total != n {
		return fmt.Errorf("format: header element total %d does not match column length %d", total, n)
	}

	if h.LengthDict256 > 256 {
		return fmt.Errorf("format: DICT256 dictionary length %d exceeds cap of 256", h.LengthDict256)
	}

	return nil
}
