package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMethodString(t *testing.T) {
	require.Equal(t, "RAW", Raw.String())
	require.Equal(t, "DICT256", DICT256.String())
	require.Equal(t, "DICT", Dict.String())
	require.Equal(t, "EOL", EOL.String())
	require.Equal(t, "UNKNOWN", Method(99).String())
}

func TestMethodIntegerOnly(t *testing.T) {
	integerOnly := []Method{Delta, Linear, Frame, Prefix}
	for _, m := range integerOnly {
		require.True(t, m.IntegerOnly(), m.String())
	}

	notIntegerOnly := []Method{Raw, RLE, Dict, DICT256}
	for _, m := range notIntegerOnly {
		require.False(t, m.IntegerOnly(), m.String())
	}
}

func TestMaskWithWithoutHas(t *testing.T) {
	var mask Mask
	require.False(t, mask.Has(Raw))

	mask = mask.With(Raw).With(Delta)
	require.True(t, mask.Has(Raw))
	require.True(t, mask.Has(Delta))
	require.False(t, mask.Has(Frame))

	mask = mask.Without(Raw)
	require.False(t, mask.Has(Raw))
	require.True(t, mask.Has(Delta))
}

func TestAllMaskEnablesEveryRealMethod(t *testing.T) {
	for m := Method(0); m < NumMethods; m++ {
		require.True(t, All.Has(m), m.String())
	}
}

func TestParseMaskDict256BeforeDict(t *testing.T) {
	mask := ParseMask("DICT256")
	require.True(t, mask.Has(DICT256))
	require.False(t, mask.Has(Dict), "DICT256 token must not also enable DICT")

	mask = ParseMask("DICT,DICT256,delta")
	require.True(t, mask.Has(Dict))
	require.True(t, mask.Has(DICT256))
	require.True(t, mask.Has(Delta))
}

func TestParseMaskIgnoresUnknown(t *testing.T) {
	mask := ParseMask("RAW,BOGUS,")
	require.True(t, mask.Has(Raw))
}

func TestParseMaskStrictRejectsUnknown(t *testing.T) {
	_, err := ParseMaskStrict("RAW,BOGUS")
	require.Error(t, err)

	mask, err := ParseMaskStrict("RAW,DELTA")
	require.NoError(t, err)
	require.True(t, mask.Has(Raw))
	require.True(t, mask.Has(Delta))
}

func TestApplicableMaskRestrictsNonInteger(t *testing.T) {
	full := ApplicableMask(All, false)
	require.True(t, full.Has(Raw))
	require.True(t, full.Has(Dict))
	require.False(t, full.Has(Delta))
	require.False(t, full.Has(Frame))

	allInt := ApplicableMask(All, true)
	require.Equal(t, All, allInt)
}

func TestBlockHeaderEncodeDecodeRoundTrip(t *testing.T) {
	tests := []BlockHeader{
		{Tag: Raw, Cnt: 0, Pad: 0},
		{Tag: Delta, Cnt: 1234, Pad: 3},
		{Tag: Frame, Cnt: MaxBlockCount, Pad: 1},
		EOLHeader,
	}

	buf := make([]byte, BlockHeaderSize)
	for _, bh := range tests {
		EncodeBlockHeader(buf, bh)
		got := DecodeBlockHeader(buf)
		require.Equal(t, bh, got)
	}
}

func TestBlockHeaderIsEOL(t *testing.T) {
	require.True(t, EOLHeader.IsEOL())
	require.False(t, BlockHeader{Tag: Raw}.IsEOL())
}

func TestHeaderBytesRoundTrip(t *testing.T) {
	h := NewHeader()
	h.NBlocks = 3
	h.Ratio = 2.5
	h.EnableMethod(Raw, 1, 10)
	h.EnableMethod(Delta, 2, 20)
	h.SetDictKeyBits(7, true)
	h.SetDict256KeyBits(8, false)
	h.PosDict = 100
	h.LengthDict = 5
	h.DictByteLen = 40
	h.PosDict256 = 200
	h.LengthDict256 = 256
	h.Dict256ByteLen = 256
	h.FrameBits = 8
	h.FramePos = 300
	h.FrameLength = 10

	buf := h.Bytes()
	require.Len(t, buf, HeaderSize)

	got, err := ParseHeader(buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestHeaderDictKeyBitsFlag(t *testing.T) {
	h := NewHeader()
	h.SetDictKeyBits(5, true)
	require.True(t, h.DictEncoded())
	require.Equal(t, uint8(5), h.DictKeyBits())

	h.SetDictKeyBits(5, false)
	require.False(t, h.DictEncoded())
	require.Equal(t, uint8(5), h.DictKeyBits())
}

func TestHeaderValidate(t *testing.T) {
	h := NewHeader()
	h.EnableMethod(Raw, 1, 10)
	h.EnableMethod(Delta, 1, 5)

	require.NoError(t, h.Validate(15))
	require.Error(t, h.Validate(14))

	h.LengthDict256 = 300
	require.Error(t, h.Validate(15))
}

func TestParseHeaderShortBuffer(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	require.Error(t, err)
}
