package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

func TestNewEstimateStateInitialMaxCnt(t *testing.T) {
	st := NewEstimateState(typekit.Int64Kit())
	require.Equal(t, InitialMaxCnt, st.MaxCnt)
}

func TestResultNormalizedCost(t *testing.T) {
	r := Result{Len: 10, Bytes: 20}
	require.InDelta(t, 20*100/10, r.NormalizedCost(100), 1e-9)
}

func TestResultNormalizedCostZeroLenNeverSelected(t *testing.T) {
	r := Result{Len: 0, Bytes: 5}
	require.Greater(t, r.NormalizedCost(100), float64(1<<61))
}

func TestRejectUnlessRaw(t *testing.T) {
	width := 8

	require.False(t, RejectUnlessRaw(format.Raw, Result{Len: 1, Bytes: 1000}, width),
		"RAW must never be rejected regardless of its own cost")

	require.True(t, RejectUnlessRaw(format.Delta, Result{Len: 2, Bytes: 16}, width),
		"compression that is no better than RAW must be rejected")

	require.False(t, RejectUnlessRaw(format.Delta, Result{Len: 2, Bytes: 15}, width))
}
