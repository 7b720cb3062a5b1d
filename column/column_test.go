package column

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/errs"
	"github.com/colmosaic/mosaic/typekit"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	kit := typekit.Int64Kit()
	values := make([]int64, 200)
	for i := range values {
		values[i] = int64(i) * 10
	}

	col, err := Compress(kit, values)
	require.NoError(t, err)
	require.Equal(t, int64(len(values)), col.Len())

	got := col.Decompress()
	require.Equal(t, values, got)
}

func TestCompressEmptyColumnErrors(t *testing.T) {
	kit := typekit.Int64Kit()
	_, err := Compress(kit, nil)
	require.ErrorIs(t, err, errs.ErrCannotCompress)
}

func TestCompressNoReductionReturnsError(t *testing.T) {
	kit := typekit.Int64Kit()
	// A single, incompressible value still costs at least a block header
	// plus its own width, which cannot beat the uncompressed size.
	values := []int64{42}

	_, err := Compress(kit, values)
	require.ErrorIs(t, err, errs.ErrNoReduction)
}

func TestEngineOverCompressedColumn(t *testing.T) {
	kit := typekit.Int64Kit()
	values := make([]int64, 50)
	for i := range values {
		values[i] = int64(i)
	}

	col, err := Compress(kit, values)
	require.NoError(t, err)

	e := col.Engine()
	require.NotNil(t, e)
}
