package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDenseRangeNextPeekExhausted(t *testing.T) {
	d := NewDenseRange(10, 13)

	v, ok := d.Peek()
	require.True(t, ok)
	require.Equal(t, int64(10), v)

	var got []int64
	for {
		oid, ok := d.Next()
		if !ok {
			break
		}
		got = append(got, oid)
	}

	require.Equal(t, []int64{10, 11, 12}, got)
	require.True(t, d.Exhausted())

	_, ok = d.Next()
	require.False(t, ok)
}

func TestDenseRangeSkipTo(t *testing.T) {
	d := NewDenseRange(0, 100)
	d.SkipTo(50)

	v, ok := d.Next()
	require.True(t, ok)
	require.Equal(t, int64(50), v)

	// SkipTo backwards is a no-op.
	d.SkipTo(10)
	v, ok = d.Next()
	require.True(t, ok)
	require.Equal(t, int64(51), v)
}

func TestSparseNextPeekSkipTo(t *testing.T) {
	s := NewSparse([]int64{2, 5, 9, 20})

	v, ok := s.Peek()
	require.True(t, ok)
	require.Equal(t, int64(2), v)

	s.SkipTo(9)
	v, ok = s.Next()
	require.True(t, ok)
	require.Equal(t, int64(9), v)

	v, ok = s.Next()
	require.True(t, ok)
	require.Equal(t, int64(20), v)

	require.True(t, s.Exhausted())
	_, ok = s.Next()
	require.False(t, ok)
}

func TestSparseSkipToPastEnd(t *testing.T) {
	s := NewSparse([]int64{1, 2, 3})
	s.SkipTo(100)
	require.True(t, s.Exhausted())
}

func TestAllIteratesRemaining(t *testing.T) {
	s := NewSparse([]int64{1, 2, 3, 4})
	_, _ = s.Next() // consume the 1

	var got []int64
	for oid := range All(s) {
		got = append(got, oid)
	}

	require.Equal(t, []int64{2, 3, 4}, got)
}
