package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

func TestRawEstimateCoversRemainder(t *testing.T) {
	kit := typekit.Int64Kit()
	values := []int64{1, 2, 3, 4, 5}

	r := RawEstimate(kit, values, 2)
	require.True(t, r.Applicable)
	require.Equal(t, 3, r.Len)
	require.Equal(t, format.BlockHeaderSize+3*kit.Width(), r.Bytes)
}

func TestRawCompressDecompressRoundTrip(t *testing.T) {
	kit := typekit.Int32Kit()
	values := []int32{-5, 0, 7, 1000, -1000}

	body := RawCompress(kit, values, 1, 3)
	got := RawDecompress(kit, body, 3)

	require.Equal(t, values[1:4], got)
}

func TestRawSelectAndProject(t *testing.T) {
	kit := typekit.Int64Kit()
	values := []int64{10, 20, 30, 40}
	body := RawCompress(kit, values, 0, 4)

	r := Range[int64]{Lo: ptr(int64(15)), Hi: ptr(int64(35)), LoIncl: true, HiIncl: true}
	var out []int64
	RawSelect(kit, body, 4, 100, r, NewDenseRange(100, 104), &out)
	require.Equal(t, []int64{101, 102}, out)

	var pairs []int64
	RawProject(kit, body, 4, 100, NewDenseRange(100, 104), func(oid int64, v int64) {
		pairs = append(pairs, oid, v)
	})
	require.Equal(t, []int64{100, 10, 101, 20, 102, 30, 103, 40}, pairs)
}
