package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colmosaic/mosaic/dict"
	"github.com/colmosaic/mosaic/format"
	"github.com/colmosaic/mosaic/typekit"
)

func newTestArtifacts(kit typekit.Kit[int64]) *Artifacts[int64] {
	return &Artifacts[int64]{Kit: kit, Frame: NewFrameDict(256)}
}

// TestDispatchRoundTripsEveryMethod drives Compress/Decompress/Select/Project
// through the codec.go switches for every real format.Method, confirming
// each dispatches to the matching method's own functions.
func TestDispatchRoundTripsEveryMethod(t *testing.T) {
	kit := typekit.Int64Kit()
	values := []int64{10, 11, 12, 13, 14}

	methods := []format.Method{
		format.Raw, format.RLE, format.Dict, format.DICT256,
		format.Delta, format.Linear, format.Frame, format.Prefix,
	}

	for _, m := range methods {
		t.Run(m.String(), func(t *testing.T) {
			art := newTestArtifacts(kit)
			vals := values
			if m == format.RLE {
				vals = []int64{7, 7, 7, 7, 7}
			}
			n := len(vals)

			switch m {
			case format.Dict:
				builder := dict.NewBuilder(kit)
				DictCommit(builder, vals, 0, n)
				art.Dict = builder.Finalize()
			case format.DICT256:
				builder := dict.NewCappedBuilder(kit, 256)
				for _, v := range vals {
					builder.Add(v)
				}
				builder.Freeze()
				art.Dict256 = builder.Finalize()
			case format.Frame:
				FrameCommit(kit, art.Frame, vals, 0, n)
			}

			body, err := Compress(m, art, vals, 0, n)
			require.NoError(t, err)

			bodySize := BodySize(m, art, body, n)
			require.Equal(t, len(body), bodySize, "BodySize must match the actual compressed body length")

			got := Decompress(m, art, body, n)
			require.Equal(t, vals, got)

			r := Range[int64]{Lo: ptr(vals[1]), Hi: ptr(vals[1]), LoIncl: true, HiIncl: true}
			var out []int64
			Select(m, art, body, n, 0, r, NewDenseRange(0, int64(n)), &out)
			require.NotEmpty(t, out)

			var projected []int64
			Project(m, art, body, n, 0, NewDenseRange(0, int64(n)), func(oid int64, v int64) {
				projected = append(projected, v)
			})
			require.Equal(t, vals, projected)
		})
	}
}

func TestCompressUnknownMethodErrors(t *testing.T) {
	kit := typekit.Int64Kit()
	art := newTestArtifacts(kit)

	_, err := Compress(format.EOL, art, []int64{1}, 0, 1)
	require.Error(t, err)
}

func TestDecompressUnknownMethodReturnsNil(t *testing.T) {
	kit := typekit.Int64Kit()
	art := newTestArtifacts(kit)

	require.Nil(t, Decompress(format.EOL, art, nil, 0))
}

func TestEstimateDispatchesToEachMethod(t *testing.T) {
	kit := typekit.Int64Kit()
	st := NewEstimateState(kit)
	values := []int64{1, 2, 3, 4, 5}

	st.DictBuilder = dict.NewBuilder(kit)
	st.Dict256Builder = dict.NewCappedBuilder(kit, 256)
	for _, v := range values {
		st.Dict256Builder.Add(v)
	}
	st.Dict256Builder.Freeze()
	st.FrameDict = NewFrameDict(256)

	methods := []format.Method{
		format.Raw, format.RLE, format.Dict, format.DICT256,
		format.Delta, format.Linear, format.Frame, format.Prefix,
	}

	for _, m := range methods {
		r := Estimate(m, st, values, 0)
		require.True(t, r.Applicable, m.String())
		require.Positive(t, r.Len, m.String())
	}
}

func TestEstimateUnknownMethodReturnsZeroResult(t *testing.T) {
	kit := typekit.Int64Kit()
	st := NewEstimateState(kit)

	r := Estimate(format.EOL, st, []int64{1}, 0)
	require.False(t, r.Applicable)
}

func TestCommitGrowsDictAndFrameBuilders(t *testing.T) {
	kit := typekit.Int64Kit()
	st := NewEstimateState(kit)
	st.DictBuilder = dict.NewBuilder(kit)
	st.Dict256Builder = dict.NewCappedBuilder(kit, 256)
	st.FrameDict = NewFrameDict(256)

	values := []int64{1, 2, 3}

	Commit(format.Dict, st, values, 0, len(values))
	require.Equal(t, 3, st.DictBuilder.Len())

	Commit(format.Frame, st, values, 0, len(values))
	require.Positive(t, st.FrameDict.Len())

	// RAW, RLE, DELTA, LINEAR, PREFIX have no side state and must no-op.
	Commit(format.Raw, st, values, 0, len(values))
	require.Equal(t, 3, st.DictBuilder.Len())
}
