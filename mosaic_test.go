package mosaic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressInt64LoadRoundTrip(t *testing.T) {
	values := make([]int64, 500)
	for i := range values {
		values[i] = int64(i % 11)
	}

	col, err := CompressInt64(values)
	require.NoError(t, err)

	data := col.Bytes()
	require.NotEmpty(t, data)

	loaded, err := LoadInt64(data, col.Len())
	require.NoError(t, err)
	require.Equal(t, values, loaded.Decompress())
}

func TestCompressFloat64LoadRoundTrip(t *testing.T) {
	values := make([]float64, 300)
	for i := range values {
		values[i] = float64(i % 5)
	}

	col, err := CompressFloat64(values)
	require.NoError(t, err)

	data := col.Bytes()
	loaded, err := LoadFloat64(data, col.Len())
	require.NoError(t, err)
	require.Equal(t, values, loaded.Decompress())
}

func TestCompressInt32LoadRoundTrip(t *testing.T) {
	values := make([]int32, 200)
	for i := range values {
		values[i] = int32(i) * 2
	}

	col, err := CompressInt32(values)
	require.NoError(t, err)

	data := col.Bytes()
	loaded, err := LoadInt32(data, col.Len())
	require.NoError(t, err)
	require.Equal(t, values, loaded.Decompress())
}
