package codec

import "github.com/colmosaic/mosaic/typekit"

// Artifacts bundles the per-column side state that DICT, DICT256, and FRAME
// need at compress, decompress, select, and project time: the two finalized
// dictionaries and the frame delta dictionary. RAW, RLE, DELTA, LINEAR, and
// PREFIX ignore it, but every method function takes the same *Artifacts[T]
// parameter so plan and scan can dispatch through one uniform call shape
// regardless of method.
type Artifacts[T typekit.Numeric] struct {
	Kit typekit.Kit[T]

	Dict    []T // finalized DICT dictionary, strictly ascending
	Dict256 []T // finalized DICT256 dictionary, strictly ascending, len <= 256

	Frame *FrameDict // shared FRAME delta dictionary
}
