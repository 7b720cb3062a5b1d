package persist

// NoOpCodec bypasses compression entirely, for heaps that are already
// dense (most DICT256/FRAME-heavy columns gain little from a second LZ
// pass) or for debugging with byte-identical on-disk output.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

func (NoOpCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
