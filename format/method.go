// Package format defines the on-disk shapes shared by every package in
// colmosaic: method identifiers, the MosaicHeader, and the 5-byte block
// common header. Nothing here allocates a heap or drives compression —
// that is plan and column's job — this package only describes bytes.
package format

import (
	"strings"

	"github.com/colmosaic/mosaic/errs"
)

// Method identifies one of the eight compression methods, or EOL. These
// constants are persisted in every compressed heap and are therefore
// stable.
type Method uint8

const (
	Raw     Method = 0
	RLE     Method = 1
	DICT256 Method = 2
	Dict    Method = 3
	Delta   Method = 4
	Linear  Method = 5
	Frame   Method = 6
	Prefix  Method = 7
	EOL     Method = 8
)

// NumMethods is the count of real (non-EOL) methods, used to size the
// per-method counter arrays in MosaicHeader.
const NumMethods = 8

func (m Method) String() string {
	switch m {
	case Raw:
		return "RAW"
	case RLE:
		return "RLE"
	case DICT256:
		return "DICT256"
	case Dict:
		return "DICT"
	case Delta:
		return "DELTA"
	case Linear:
		return "LINEAR"
	case Frame:
		return "FRAME"
	case Prefix:
		return "PREFIX"
	case EOL:
		return "EOL"
	default:
		return "UNKNOWN"
	}
}

// IntegerOnly reports whether m is restricted to integer-width types:
// DELTA, LINEAR, FRAME, PREFIX.
func (m Method) IntegerOnly() bool {
	switch m {
	case Delta, Linear, Frame, Prefix:
		return true
	default:
		return false
	}
}

// HasDictionary reports whether m draws from one of the two global
// per-column dictionaries.
func (m Method) HasDictionary() bool {
	return m == Dict || m == DICT256
}

// Mask is a bitmask over the eight real methods, selecting which ones the
// planner may consider for a given compression run.
type Mask uint16

// bit returns the Mask bit corresponding to m. EOL has no bit.
func bit(m Method) Mask {
	if m >= NumMethods {
		return 0
	}

	return Mask(1) << uint(m)
}

// Has reports whether m is enabled in the mask.
func (ms Mask) Has(m Method) bool { return ms&bit(m) != 0 }

// With returns a copy of the mask with m enabled.
func (ms Mask) With(m Method) Mask { return ms | bit(m) }

// Without returns a copy of the mask with m disabled.
func (ms Mask) Without(m Method) Mask { return ms &^ bit(m) }

// All enables every method.
const All Mask = Mask(1<<NumMethods) - 1

// methodNames maps canonical method names to their Method for ParseMask.
// Order matters only for documentation; lookup is by exact token.
var methodNames = map[string]Method{
	"RAW":     Raw,
	"RLE":     RLE,
	"DICT256": DICT256,
	"DICT":    Dict,
	"DELTA":   Delta,
	"LINEAR":  Linear,
	"FRAME":   Frame,
	"PREFIX":  Prefix,
}

// ParseMask parses a comma-separated list of method names into a Mask.
//
// Unknown names are ignored, and DICT256 is matched before DICT so that
// the literal substring "DICT" occurring inside "DICT256" never causes a
// request for DICT256 to also silently enable DICT. This is done by
// tokenizing on commas and matching each token against the full
// method-name set, never by substring search, to avoid a cap-dictionary
// ordering bug.
func ParseMask(spec string) Mask {
	var mask Mask

	for _, tok := range strings.Split(spec, ",") {
		name := strings.ToUpper(strings.TrimSpace(tok))
		if name == "" {
			continue
		}

		if m, ok := methodNames[name]; ok {
			mask = mask.With(m)
		}
	}

	return mask
}

// ParseMaskStrict behaves like ParseMask but returns errs.ErrUnknownMethodName
// for any token that does not match a known method name, instead of
// silently ignoring it. Reserved for callers that want strict validation
// of user-supplied configuration.
func ParseMaskStrict(spec string) (Mask, error) {
	var mask Mask

	for _, tok := range strings.Split(spec, ",") {
		name := strings.ToUpper(strings.TrimSpace(tok))
		if name == "" {
			continue
		}

		m, ok := methodNames[name]
		if !ok {
			return 0, errs.ErrUnknownMethodName
		}

		mask = mask.With(m)
	}

	return mask, nil
}

// ApplicableMask returns mask restricted to the methods applicable to a
// column of the given integer-ness: RAW/RLE/DICT/DICT256 apply to every
// type; DELTA/LINEAR/FRAME/PREFIX apply only when isInteger is true.
func ApplicableMask(mask Mask, isInteger bool) Mask {
	if isInteger {
		return mask
	}

	return mask &^ (bit(Delta) | bit(Linear) | bit(Frame) | bit(Prefix))
}
