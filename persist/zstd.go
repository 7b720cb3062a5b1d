package persist

// ZstdCodec favours compression ratio over speed, for cold/archival
// storage of mosaic heaps. Its methods come from zstd_pure.go (the pure-Go
// klauspost/compress encoder) in every default build; the cgo-backed
// gozstd variant in zstd_cgo.go replaces it only under the nobuild tag.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}
