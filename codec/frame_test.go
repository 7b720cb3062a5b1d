package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/typekit"
)

func TestFrameDictInsertAndIndexOf(t *testing.T) {
	fd := NewFrameDict(4)

	idx, ok := fd.Insert(10)
	require.True(t, ok)
	require.Equal(t, 0, idx)

	// Re-inserting the same value returns the same index.
	idx2, ok := fd.Insert(10)
	require.True(t, ok)
	require.Equal(t, idx, idx2)

	idx3, ok := fd.Insert(20)
	require.True(t, ok)
	require.Equal(t, 1, idx3)

	got, ok := fd.IndexOf(20)
	require.True(t, ok)
	require.Equal(t, 1, got)
}

func TestFrameDictInsertRefusesWhenFull(t *testing.T) {
	fd := NewFrameDict(2)
	_, ok := fd.Insert(1)
	require.True(t, ok)
	_, ok = fd.Insert(2)
	require.True(t, ok)

	_, ok = fd.Insert(3)
	require.False(t, ok, "dictionary at its cap must refuse a genuinely new value")

	// An already-present value still succeeds even when full.
	idx, ok := fd.Insert(1)
	require.True(t, ok)
	require.Equal(t, 0, idx)
}

func TestFrameEstimateCommitCompressDecompressRoundTrip(t *testing.T) {
	kit := typekit.Int64Kit()
	fd := NewFrameDict(256)
	values := []int64{100, 101, 100, 105, 100}

	r := FrameEstimate(kit, fd, values, 0)
	require.True(t, r.Applicable)
	require.Equal(t, len(values), r.Len)

	FrameCommit(kit, fd, values, 0, len(values))
	body := FrameCompress(kit, fd, values, 0, len(values))
	got := FrameDecompress(kit, fd, body, len(values))

	require.Equal(t, values, got)
}

func TestFrameSelectAndProject(t *testing.T) {
	kit := typekit.Int64Kit()
	fd := NewFrameDict(256)
	values := []int64{100, 101, 100, 105, 100}

	FrameCommit(kit, fd, values, 0, len(values))
	body := FrameCompress(kit, fd, values, 0, len(values))

	r := Range[int64]{Lo: ptr(int64(101)), Hi: ptr(int64(105)), LoIncl: true, HiIncl: true}
	var out []int64
	FrameSelect(kit, fd, body, len(values), 0, r, NewDenseRange(0, 5), &out)
	require.Equal(t, []int64{1, 3}, out)

	var got []int64
	FrameProject(kit, fd, body, len(values), 0, NewDenseRange(0, 5), func(oid int64, v int64) {
		got = append(got, v)
	})
	require.Equal(t, values, got)
}

func TestFrameBitsFloorsAtOne(t *testing.T) {
	fd := NewFrameDict(256)
	require.Equal(t, uint8(1), fd.Bits())

	fd.Insert(1)
	require.Equal(t, uint8(1), fd.Bits())
}
