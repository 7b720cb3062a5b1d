package regression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/persist"
	"github.com/colmosaic/mosaic/plan"
)

func TestAnalyzeFitsBestModel(t *testing.T) {
	samples := []Sample{
		{Rows: 10, Bytes: 100},
		{Rows: 100, Bytes: 400},
		{Rows: 1000, Bytes: 1200},
		{Rows: 10000, Bytes: 3500},
	}

	result, err := Analyze(samples)
	require.NoError(t, err)
	require.NotNil(t, result.BestFit)
	require.Len(t, result.AllModels, 5)
	require.Equal(t, []int{10, 100, 1000, 10000}, result.SampleSizes)

	// AllModels must be sorted best-first by RSquared.
	for i := 1; i < len(result.AllModels); i++ {
		require.GreaterOrEqual(t, result.AllModels[i-1].RSquared, result.AllModels[i].RSquared)
	}
}

func TestAnalyzeRejectsEmptySamples(t *testing.T) {
	_, err := Analyze(nil)
	require.Error(t, err)
}

func TestAnalyzeSkipsNonPositiveRowCounts(t *testing.T) {
	samples := []Sample{
		{Rows: 0, Bytes: 50},
		{Rows: -5, Bytes: 50},
	}

	_, err := Analyze(samples)
	require.Error(t, err, "no usable samples should produce an error")
}

func TestSampleRowCountsScalesWithTotal(t *testing.T) {
	counts := SampleRowCounts(20000)
	require.NotEmpty(t, counts)

	for i := 1; i < len(counts); i++ {
		require.Less(t, counts[i-1], counts[i])
	}
	require.Equal(t, 20000, counts[len(counts)-1])
}

func TestSampleRowCountsSmallTotal(t *testing.T) {
	counts := SampleRowCounts(1)
	require.Equal(t, []int{1}, counts)
}

func TestSampleRowCountsNonPositiveTotal(t *testing.T) {
	require.Nil(t, SampleRowCounts(0))
	require.Nil(t, SampleRowCounts(-10))
}

func TestNewAnalyzeConfigDefaults(t *testing.T) {
	cfg, err := NewAnalyzeConfig()
	require.NoError(t, err)
	require.Equal(t, persist.None, cfg.Persist)
	require.Nil(t, cfg.PlanOptions)
}

func TestNewAnalyzeConfigWithOptions(t *testing.T) {
	opt := plan.WithDict256Cap(64)
	cfg, err := NewAnalyzeConfig(WithPersist(persist.Zstd), WithPlanOptions(opt))
	require.NoError(t, err)
	require.Equal(t, persist.Zstd, cfg.Persist)
	require.Len(t, cfg.PlanOptions, 1)
}
