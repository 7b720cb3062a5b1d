package format

// BlockHeaderSize is the fixed size, in bytes, of every block's common
// header: tag:u8 | cnt:u24 | pad:u8.
//
// An earlier description of the common header called for "exactly 4
// bytes", but the three fields (tag:u8, cnt:u24, pad:u8) sum to 5 bytes;
// cnt's u24 width is load-bearing elsewhere (the 2^24-1 block-count cap and
// the MaxBlockCount invariant), so the field list wins and BlockHeaderSize
// is 5. See DESIGN.md for this resolution.
const BlockHeaderSize = 5

// MaxBlockCount is the largest element count a single block may encode,
// 2^24 - 1, since cnt is a u24 field.
const MaxBlockCount = 1<<24 - 1

// BlockHeader is the common prefix of every block in the stream,
// including the terminal EOL block (tag=EOL, cnt=0, pad=0).
type BlockHeader struct {
	Tag Method
	Cnt uint32 // 24-bit value, 0..MaxBlockCount; 0 reserved for EOL
	Pad uint8  // filler bytes between this block's body and the next header
}

// IsEOL reports whether h is the terminal marker.
func (h BlockHeader) IsEOL() bool { return h.Tag == EOL }

// EOLHeader is the canonical terminal block header.
var EOLHeader = BlockHeader{Tag: EOL}

// EncodeBlockHeader writes h into the first BlockHeaderSize bytes of dst.
// cnt is truncated to 24 bits; callers must have validated cnt <=
// MaxBlockCount beforehand (Pass A enforces this when choosing len_m).
func EncodeBlockHeader(dst []byte, h BlockHeader) {
	_ = dst[BlockHeaderSize-1] // bounds check hint
	dst[0] = byte(h.Tag)
	dst[1] = byte(h.Cnt)
	dst[2] = byte(h.Cnt >> 8)
	dst[3] = byte(h.Cnt >> 16)
	dst[4] = h.Pad
}

// DecodeBlockHeader reads a BlockHeader from the first BlockHeaderSize
// bytes of src.
func DecodeBlockHeader(src []byte) BlockHeader {
	_ = src[BlockHeaderSize-1]

	return BlockHeader{
		Tag: Method(src[0]),
		Cnt: uint32(src[1]) | uint32(src[2])<<8 | uint32(src[3])<<16,
		Pad: src[4],
	}
}
