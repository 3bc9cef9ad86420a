package gff

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedHeader  = errors.New("gff: malformed header")
	ErrCorruptOffset    = errors.New("gff: corrupt offset")
	ErrUnknownFieldType = errors.New("gff: unknown field type")
	ErrTypeMismatch     = errors.New("gff: type mismatch")
	ErrTruncatedBuffer  = errors.New("gff: truncated buffer")

	ErrFieldNotFound = errors.New("gff: field not found")
	ErrLabelTooLong  = errors.New("gff: label longer than 16 bytes")
	ErrInvalidLabel  = errors.New("gff: label contains a NUL byte")
	ErrResRefTooLong = errors.New("gff: resref longer than 16 bytes")
)

// DecodeError describes a terminal decode failure. Kind is one of the
// sentinel errors above, so callers can match it with errors.Is, and Offset
// is the absolute byte position that could not be trusted.
type DecodeError struct {
	Kind   error
	Offset uint64
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v at byte %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("%v at byte %d: %s", e.Kind, e.Offset, e.Detail)
}

func (e *DecodeError) Unwrap() error { return e.Kind }

func decodeErr(kind error, off uint64, format string, args ...any) error {
	return &DecodeError{Kind: kind, Offset: off, Detail: fmt.Sprintf(format, args...)}
}
