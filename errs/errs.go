// Package errs defines the sentinel errors surfaced by colmosaic's
// compress, decompress, and scan entry points.
//
// Callers should use errors.Is against the sentinels below rather than
// string-matching error messages. Wrapped errors (via fmt.Errorf("%w: ...",
// ErrX)) are expected at every call site that adds context.
package errs

import "errors"

// Configuration errors: surfaced synchronously from Compress, no heap
// side effects.
var (
	// ErrEmptyMethodMask is returned when the parsed method mask contains
	// no method applicable to the column's type.
	ErrEmptyMethodMask = errors.New("mosaic: method mask is empty after applying type applicability rules")

	// ErrUnknownMethodName is returned by format.ParseMaskStrict for a token that
	// does not match any known method name. Unknown names are normally
	// ignored during parsing; this error is reserved for callers that
	// opt into strict parsing.
	ErrUnknownMethodName = errors.New("mosaic: unknown method name")

	// ErrTypeNotSupported is returned when T is not a fixed-width
	// primitive recognised by typekit.
	ErrTypeNotSupported = errors.New("mosaic: type not supported")

	// ErrRawDisabled is returned when Pass A exhausts every enabled
	// method on a remaining prefix and RAW is not in the mask: the
	// planner has nothing left to fall back on and must fail clearly
	// rather than silently drop data.
	ErrRawDisabled = errors.New("mosaic: no method applicable and RAW is disabled")
)

// Resource errors: surfaced synchronously; any partial heap is freed
// before return.
var (
	// ErrOutOfMemory is returned when allocating the mosaic or vmosaic
	// heap fails.
	ErrOutOfMemory = errors.New("mosaic: out of memory")

	// ErrCannotCompress is returned when the column to compress is empty.
	// A prefix no enabled method covers with RAW disabled yields
	// ErrRawDisabled instead, and a result no smaller than the input
	// yields ErrNoReduction.
	ErrCannotCompress = errors.New("mosaic: cannot compress under given methods")
)

// ErrNoReduction is benign: the estimated compressed size is not smaller
// than the uncompressed size. Compress returns this alongside a nil heap;
// the caller decides whether to keep the column as-is.
var ErrNoReduction = errors.New("mosaic: no size reduction achieved")

// Contract errors: the caller can retry differently.
var (
	// ErrAlreadyCompressed is returned when Compress is called on a
	// column that is already a compressed heap.
	ErrAlreadyCompressed = errors.New("mosaic: column is already compressed")

	// ErrIsView is returned when Compress is called on a view over
	// another column rather than a leaf column.
	ErrIsView = errors.New("mosaic: column is a view, not a leaf column")
)

// ErrInvariant marks a fatal programmer/data-corruption error: block tag
// out of range, cnt == 0 on a non-EOL block, or an alignment mismatch.
// These are not meant to be recovered from; Fatal panics with the wrapped
// error so the core aborts rather than continuing with corrupt state.
var ErrInvariant = errors.New("mosaic: invariant violation")

// Fatal panics wrapping ErrInvariant with msg. Reserved for conditions
// that are programmer errors rather than recoverable failures: a corrupt
// block stream, an out-of-range method tag, or a cnt of zero on a non-EOL
// block.
func Fatal(msg string) {
	panic(errors.Join(ErrInvariant, errors.New(msg)))
}
