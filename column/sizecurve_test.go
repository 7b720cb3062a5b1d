package column

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/persist"
	"github.com/colmosaic/mosaic/regression"
	"github.com/colmosaic/mosaic/typekit"
)

func TestSizeCurveProducesIncreasingSamples(t *testing.T) {
	kit := typekit.Int64Kit()
	values := make([]int64, 5000)
	for i := range values {
		values[i] = int64(i) * 3
	}

	samples, err := SizeCurve(kit, values)
	require.NoError(t, err)
	require.NotEmpty(t, samples)

	for i := 1; i < len(samples); i++ {
		require.Less(t, samples[i-1].Rows, samples[i].Rows)
		require.GreaterOrEqual(t, samples[i].Bytes, samples[i-1].Bytes)
	}

	require.Equal(t, len(values), samples[len(samples)-1].Rows)
}

func TestSizeCurveWithPersistAlgorithm(t *testing.T) {
	kit := typekit.Int64Kit()
	values := make([]int64, 2000)
	for i := range values {
		values[i] = int64(i)
	}

	samples, err := SizeCurve(kit, values, regression.WithPersist(persist.S2))
	require.NoError(t, err)
	require.NotEmpty(t, samples)
}

func TestSizeCurveFeedsRegressionAnalyze(t *testing.T) {
	kit := typekit.Int64Kit()
	values := make([]int64, 5000)
	for i := range values {
		values[i] = int64(i)
	}

	samples, err := SizeCurve(kit, values)
	require.NoError(t, err)

	result, err := regression.Analyze(samples)
	require.NoError(t, err)
	require.NotNil(t, result)
}
