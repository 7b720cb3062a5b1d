package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/typekit"
)

func ptr[T any](v T) *T { return &v }

func TestRangeMatchesBothBoundsInclusive(t *testing.T) {
	r := Range[int64]{Lo: ptr(int64(5)), Hi: ptr(int64(10)), LoIncl: true, HiIncl: true}

	require.True(t, r.Matches(5))
	require.True(t, r.Matches(10))
	require.True(t, r.Matches(7))
	require.False(t, r.Matches(4))
	require.False(t, r.Matches(11))
}

func TestRangeMatchesExclusiveBounds(t *testing.T) {
	r := Range[int64]{Lo: ptr(int64(5)), Hi: ptr(int64(10)), LoIncl: false, HiIncl: false}

	require.False(t, r.Matches(5))
	require.False(t, r.Matches(10))
	require.True(t, r.Matches(6))
	require.True(t, r.Matches(9))
}

func TestRangeMatchesOpenSides(t *testing.T) {
	loOnly := Range[int64]{Lo: ptr(int64(5)), LoIncl: true}
	require.True(t, loOnly.Matches(1000))
	require.False(t, loOnly.Matches(4))

	hiOnly := Range[int64]{Hi: ptr(int64(5)), HiIncl: true}
	require.True(t, hiOnly.Matches(-1000))
	require.False(t, hiOnly.Matches(6))

	unbounded := Range[int64]{}
	require.True(t, unbounded.Matches(0))
}

func TestRangeAntiInverts(t *testing.T) {
	r := Range[int64]{Lo: ptr(int64(5)), Hi: ptr(int64(10)), LoIncl: true, HiIncl: true, Anti: true}

	require.False(t, r.Matches(7))
	require.True(t, r.Matches(4))
	require.True(t, r.Matches(11))
}

func TestRangeMatchesValueExcludesNilByDefault(t *testing.T) {
	kit := typekit.Int64Kit()
	r := Range[int64]{Lo: ptr(kit.NilValue()), Hi: ptr(kit.NilValue()), LoIncl: true, HiIncl: true}

	require.False(t, r.MatchesValue(kit, kit.NilValue()))
}

func TestRangeMatchesValueHonorsNilMatches(t *testing.T) {
	kit := typekit.Int64Kit()
	r := Range[int64]{NilMatches: true}

	require.True(t, r.MatchesValue(kit, kit.NilValue()))
}

func TestRangeMatchesValueFloatNaNSentinel(t *testing.T) {
	kit := typekit.Float64Kit()
	r := Range[float64]{Lo: ptr(0.0), Hi: ptr(100.0), LoIncl: true, HiIncl: true}

	require.False(t, r.MatchesValue(kit, kit.NilValue()))
	require.True(t, r.MatchesValue(kit, 50.0))
}
