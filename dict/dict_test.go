package dict

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/typekit"
)

func TestBuilderAddReportsFirstSight(t *testing.T) {
	b := NewBuilder(typekit.Int64Kit())

	require.True(t, b.Add(10))
	require.False(t, b.Add(10))
	require.True(t, b.Add(5))
	require.Equal(t, 2, b.Len())
}

func TestBuilderFinalizeSortsAscending(t *testing.T) {
	b := NewBuilder(typekit.Int64Kit())
	for _, v := range []int64{30, 10, 20, 10, 5} {
		b.Add(v)
	}

	require.Equal(t, []int64{5, 10, 20, 30}, b.Finalize())
}

func TestBuilderIndexOf(t *testing.T) {
	b := NewBuilder(typekit.Int64Kit())
	for _, v := range []int64{30, 10, 20} {
		b.Add(v)
	}

	idx, ok := b.IndexOf(20)
	require.True(t, ok)
	require.Equal(t, 1, idx)

	_, ok = b.IndexOf(99)
	require.False(t, ok)
}

func TestCappedBuilderFinalizeKeepsMostFrequent(t *testing.T) {
	kit := typekit.Int64Kit()
	b := NewCappedBuilder(kit, 2)

	for i := 0; i < 5; i++ {
		b.Add(1) // freq 5
	}
	for i := 0; i < 3; i++ {
		b.Add(2) // freq 3
	}
	b.Add(3) // freq 1

	got := b.Finalize()
	require.Equal(t, []int64{1, 2}, got, "only the two most frequent values should survive, sorted ascending")
}

func TestCappedBuilderFreezeConsistentWithFinalize(t *testing.T) {
	kit := typekit.Int64Kit()
	b := NewCappedBuilder(kit, 2)

	for i := 0; i < 5; i++ {
		b.Add(1)
	}
	for i := 0; i < 3; i++ {
		b.Add(2)
	}
	b.Add(3)

	// Before Freeze, Contains reflects every value ever seen.
	require.True(t, b.Contains(3))

	b.Freeze()

	// After Freeze, Contains only admits survivors of the actual cap.
	require.True(t, b.Contains(1))
	require.True(t, b.Contains(2))
	require.False(t, b.Contains(3))

	require.Equal(t, b.Finalize(), []int64{1, 2})
}

func TestBitsExtended(t *testing.T) {
	require.Equal(t, uint8(1), BitsExtended(0))
	require.Equal(t, uint8(1), BitsExtended(1))
	require.Equal(t, uint8(1), BitsExtended(2))
	require.Equal(t, uint8(2), BitsExtended(3))
	require.Equal(t, uint8(8), BitsExtended(256))
}

func TestIndexIn(t *testing.T) {
	kit := typekit.Int64Kit()
	dictionary := []int64{1, 5, 10, 20}

	idx, ok := IndexIn(dictionary, 10, kit)
	require.True(t, ok)
	require.Equal(t, 2, idx)

	_, ok = IndexIn(dictionary, 7, kit)
	require.False(t, ok)
}

func TestEncodeDecodeSortedRoundTrip(t *testing.T) {
	kit := typekit.Int64Kit()
	values := []int64{3, 10, 10_000, 10_000_001, 1 << 40}

	encoded := EncodeSorted(values, kit)
	require.NotEmpty(t, encoded)

	decoded := DecodeSorted[int64](encoded, len(values), kit)
	require.Equal(t, values, decoded)
}

func TestEncodeDecodeSortedEmpty(t *testing.T) {
	kit := typekit.Int64Kit()
	require.Nil(t, EncodeSorted[int64](nil, kit))
	require.Empty(t, DecodeSorted[int64](nil, 0, kit))
}
