package bitvec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSizeBytes(t *testing.T) {
	tests := []struct {
		name string
		n    int
		w    int
		want int
	}{
		{"zero n", 0, 5, 0},
		{"zero width", 10, 0, 0},
		{"single bit byte-aligned", 8, 1, 4},
		{"single bit one extra", 9, 1, 4},
		{"width 5 some padding", 3, 5, 4},
		{"width 64 full words", 2, 64, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SizeBytes(tt.n, tt.w))
		})
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	widths := []int{1, 3, 7, 8, 13, 31, 32, 47, 63, 64}

	for _, w := range widths {
		t.Run("", func(t *testing.T) {
			const n = 50
			buf := make([]byte, SizeBytes(n, w))

			values := make([]uint64, n)
			for i := 0; i < n; i++ {
				values[i] = widthMask(w) & uint64(i*2654435761+1)
				Set(buf, i, w, values[i])
			}

			for i := 0; i < n; i++ {
				require.Equal(t, values[i], Get(buf, i, w), "width=%d i=%d", w, i)
			}
		})
	}
}

func TestSetOverwriteDoesNotDisturbNeighbors(t *testing.T) {
	const w = 13
	const n = 10
	buf := make([]byte, SizeBytes(n, w))

	for i := 0; i < n; i++ {
		Set(buf, i, w, uint64(i+1))
	}

	Set(buf, 4, w, widthMask(w))

	for i := 0; i < n; i++ {
		want := uint64(i + 1)
		if i == 4 {
			want = widthMask(w)
		}
		require.Equal(t, want, Get(buf, i, w))
	}
}

func TestGetPastEndZeroFills(t *testing.T) {
	buf := make([]byte, 4)
	require.Equal(t, uint64(0), Get(buf, 100, 8))
}

func TestWidthMask(t *testing.T) {
	require.Equal(t, uint64(0), widthMask(0))
	require.Equal(t, uint64(1), widthMask(1))
	require.Equal(t, uint64(0xff), widthMask(8))
	require.Equal(t, ^uint64(0), widthMask(64))
}
