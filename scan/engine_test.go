package scan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/codec"
	"github.com/colmosaic/mosaic/column"
	"github.com/colmosaic/mosaic/scan"
	"github.com/colmosaic/mosaic/typekit"
)

func ptr[T any](v T) *T { return &v }

func buildEngine(t *testing.T, values []int64) *scan.Engine[int64] {
	t.Helper()

	col, err := column.Compress(typekit.Int64Kit(), values)
	require.NoError(t, err)

	return col.Engine()
}

func TestEngineRangeSelect(t *testing.T) {
	values := []int64{1, 5, 10, 15, 20, 25, 30}
	e := buildEngine(t, values)

	r := codec.Range[int64]{Lo: ptr(int64(10)), Hi: ptr(int64(25)), LoIncl: true, HiIncl: true}
	oids := e.RangeSelect(r, codec.NewDenseRange(0, int64(len(values))))

	require.Equal(t, []int64{2, 3, 4, 5}, oids)
}

func TestEngineRangeSelectRestrictedByCandidate(t *testing.T) {
	values := []int64{1, 5, 10, 15, 20, 25, 30}
	e := buildEngine(t, values)

	r := codec.Range[int64]{Lo: ptr(int64(0)), LoIncl: true}
	oids := e.RangeSelect(r, codec.NewSparse([]int64{0, 2, 4}))

	require.Equal(t, []int64{0, 2, 4}, oids)
}

func TestEngineThetaSelect(t *testing.T) {
	values := []int64{1, 5, 10, 15, 20}
	e := buildEngine(t, values)

	oids := e.ThetaSelect(scan.ThetaGT, 10, codec.NewDenseRange(0, int64(len(values))))
	require.Equal(t, []int64{3, 4}, oids)

	oids = e.ThetaSelect(scan.ThetaLE, 10, codec.NewDenseRange(0, int64(len(values))))
	require.Equal(t, []int64{0, 1, 2}, oids)

	oids = e.ThetaSelect(scan.ThetaNE, 10, codec.NewDenseRange(0, int64(len(values))))
	require.Equal(t, []int64{0, 1, 3, 4}, oids)
}

func TestEngineProject(t *testing.T) {
	values := []int64{100, 200, 300, 400}
	e := buildEngine(t, values)

	oids, got := e.Project(codec.NewDenseRange(0, int64(len(values))))
	require.Equal(t, []int64{0, 1, 2, 3}, oids)
	require.Equal(t, values, got)
}

func TestEngineJoinCompressedOuter(t *testing.T) {
	outerValues := []int64{1, 2, 3, 4, 5}
	e := buildEngine(t, outerValues)

	inner := []int64{3, 5, 5, 9}
	pairs := e.JoinCompressedOuter(codec.NewDenseRange(0, int64(len(outerValues))), inner, 1000, false)

	require.ElementsMatch(t, []codec.Pair{
		{Left: 2, Right: 1000},
		{Left: 4, Right: 1001},
		{Left: 4, Right: 1002},
	}, pairs)
}

func TestEngineJoinUncompressedOuter(t *testing.T) {
	innerValues := []int64{10, 20, 30, 40}
	e := buildEngine(t, innerValues)

	outer := []int64{20, 40, 40, 99}
	pairs := e.JoinUncompressedOuter(outer, 500, codec.NewDenseRange(0, int64(len(innerValues))), false)

	require.ElementsMatch(t, []codec.Pair{
		{Left: 500, Right: 1},
		{Left: 501, Right: 3},
		{Left: 502, Right: 3},
	}, pairs)
}
