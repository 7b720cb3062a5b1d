// Package persist wraps a column.Column's serialized heap bytes with a
// pluggable general-purpose compression layer for storage and transport.
// The compressed heap is the columnar encoding; persist is a second,
// independent layer on top of that.
//
// This is deliberately kept outside codec's eight column-encoding methods:
// general LZ/entropy coding is not a column encoding method, but nothing
// rules out compressing the already-mosaic-encoded heap for disk or
// network -- the two concerns are orthogonal, and
// persist only ever sees opaque bytes already produced by column.Bytes().
package persist

import "fmt"

// Algorithm identifies one of the supported heap-compression algorithms.
type Algorithm uint8

const (
	None Algorithm = iota
	Zstd
	S2
	LZ4
)

func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Compressor compresses a column.Column's serialized heap bytes.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// New returns the Codec for algo.
func New(algo Algorithm) (Codec, error) {
	switch algo {
	case None:
		return NoOpCodec{}, nil
	case Zstd:
		return ZstdCodec{}, nil
	case S2:
		return S2Codec{}, nil
	case LZ4:
		return LZ4Codec{}, nil
	default:
		return nil, fmt.Errorf("persist: unknown compression algorithm %d", algo)
	}
}
