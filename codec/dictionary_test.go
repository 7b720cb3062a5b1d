package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/dict"
	"github.com/colmosaic/mosaic/typekit"
)

func TestDictEstimateUncappedAdmitsNewValues(t *testing.T) {
	kit := typekit.Int64Kit()
	builder := dict.NewBuilder(kit)

	values := []int64{1, 2, 1, 3, 2}
	r := DictEstimate(builder, values, 0, false)

	require.True(t, r.Applicable)
	require.Equal(t, len(values), r.Len)
}

func TestDictEstimateCappedStopsAtUnknownValue(t *testing.T) {
	kit := typekit.Int64Kit()
	builder := dict.NewCappedBuilder(kit, 2)
	builder.Add(1)
	builder.Add(2)
	builder.Freeze()

	values := []int64{1, 2, 1, 3, 2}
	r := DictEstimate(builder, values, 0, true)

	require.True(t, r.Applicable)
	require.Equal(t, 3, r.Len, "capped dict must stop before the first value it does not contain")
}

func TestDictCompressDecompressRoundTrip(t *testing.T) {
	kit := typekit.Int64Kit()
	builder := dict.NewBuilder(kit)
	values := []int64{5, 1, 5, 9, 1}

	DictCommit(builder, values, 0, len(values))
	dictionary := builder.Finalize()
	bits := int(dict.BitsExtended(len(dictionary)))

	body := DictCompress(kit, dictionary, bits, values, 0, len(values))
	got := DictDecompress(dictionary, bits, body, len(values))

	require.Equal(t, values, got)
}

func TestDictSelectAndProject(t *testing.T) {
	kit := typekit.Int64Kit()
	builder := dict.NewBuilder(kit)
	values := []int64{5, 1, 5, 9, 1}

	DictCommit(builder, values, 0, len(values))
	dictionary := builder.Finalize()
	bits := int(dict.BitsExtended(len(dictionary)))
	body := DictCompress(kit, dictionary, bits, values, 0, len(values))

	r := Range[int64]{Lo: ptr(int64(5)), Hi: ptr(int64(5)), LoIncl: true, HiIncl: true}
	var out []int64
	DictSelect(kit, dictionary, bits, body, len(values), 0, r, NewDenseRange(0, 5), &out)
	require.Equal(t, []int64{0, 2}, out)

	var got []int64
	DictProject(dictionary, bits, body, len(values), 0, NewDenseRange(0, 5), func(oid int64, v int64) {
		got = append(got, v)
	})
	require.Equal(t, values, got)
}
