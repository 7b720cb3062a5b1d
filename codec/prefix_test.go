package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/typekit"
)

func TestPrefixEstimateSharedHighBits(t *testing.T) {
	kit := typekit.Int64Kit()
	values := []int64{16, 17, 18, 19, 20, 21, 22, 23}

	r := PrefixEstimate(kit, values, 0)
	require.True(t, r.Applicable)
	require.Equal(t, len(values), r.Len)
}

func TestPrefixCompressDecompressRoundTrip(t *testing.T) {
	kit := typekit.Int32Kit()
	values := []int32{1024, 1025, 1026, 1027, 1030}

	body := PrefixCompress(kit, values, 0, len(values))
	got := PrefixDecompress(kit, body, len(values))

	require.Equal(t, values, got)
}

func TestPrefixSelectAndProject(t *testing.T) {
	kit := typekit.Int64Kit()
	values := []int64{100, 101, 102, 103}
	body := PrefixCompress(kit, values, 0, len(values))

	r := Range[int64]{Lo: ptr(int64(101)), Hi: ptr(int64(102)), LoIncl: true, HiIncl: true}
	var out []int64
	PrefixSelect(kit, body, len(values), 0, r, NewDenseRange(0, 4), &out)
	require.Equal(t, []int64{1, 2}, out)

	var got []int64
	PrefixProject(kit, body, len(values), 0, NewDenseRange(0, 4), func(oid int64, v int64) {
		got = append(got, v)
	})
	require.Equal(t, values, got)
}
