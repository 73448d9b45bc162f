// errors.go - Sentinel errors shared across the page/record decode path.
package format

import "errors"

// ErrShortRead is returned by a fixed-width reader when the input slice does
// not have enough bytes remaining at the requested offset.
var ErrShortRead = errors.New("short read")

// Decode-level error kinds (spec ERROR HANDLING DESIGN). Each is wrapped with
// fmt.Errorf("%w: detail", ErrX) at the call site so callers can errors.Is it.
var (
	// ErrPageTypeMismatch: expected INDEX/BLOB, saw something else.
	ErrPageTypeMismatch = errors.New("page type mismatch")
	// ErrMalformedRecord: invalid next-offset, declared length exceeds page, unknown record type.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrUnsupportedLobFormat: newer LOB_FIRST page encountered.
	ErrUnsupportedLobFormat = errors.New("unsupported LOB page format")
	// ErrSchemaMismatch: record shape disagrees with the TableDef.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrInvalidArgument: bounds inverted, key arity wrong, null element in key.
	ErrInvalidArgument = errors.New("invalid argument")
)
