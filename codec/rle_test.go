package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/typekit"
)

func TestRleEstimateMeasuresRun(t *testing.T) {
	kit := typekit.Int64Kit()
	values := []int64{7, 7, 7, 7, 9, 9}

	r := RleEstimate(kit, values, 0)
	require.True(t, r.Applicable)
	require.Equal(t, 4, r.Len)

	r = RleEstimate(kit, values, 4)
	require.Equal(t, 2, r.Len)
}

func TestRleCompressDecompress(t *testing.T) {
	kit := typekit.Int16Kit()

	body := RleCompress(kit, int16(-42))
	got := RleDecompress(kit, body, 5)

	require.Equal(t, []int16{-42, -42, -42, -42, -42}, got)
}

func TestRleSelectSkipsWhenNoMatch(t *testing.T) {
	kit := typekit.Int64Kit()
	body := RleCompress(kit, int64(7))

	r := Range[int64]{Lo: ptr(int64(100)), LoIncl: true}
	cand := NewDenseRange(0, 10)
	var out []int64
	RleSelect(kit, body, 5, 0, r, cand, &out)

	require.Empty(t, out)
	next, ok := cand.Peek()
	require.True(t, ok)
	require.Equal(t, int64(5), next, "non-matching run should skip the whole block's candidates")
}

func TestRleSelectAndProjectWhenMatch(t *testing.T) {
	kit := typekit.Int64Kit()
	body := RleCompress(kit, int64(7))

	r := Range[int64]{Lo: ptr(int64(7)), Hi: ptr(int64(7)), LoIncl: true, HiIncl: true}
	var out []int64
	RleSelect(kit, body, 3, 50, r, NewDenseRange(50, 53), &out)
	require.Equal(t, []int64{50, 51, 52}, out)

	var vals []int64
	RleProject(kit, body, 3, 50, NewDenseRange(50, 53), func(oid int64, v int64) {
		vals = append(vals, v)
	})
	require.Equal(t, []int64{7, 7, 7}, vals)
}
