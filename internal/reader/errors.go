package reader

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat means the source does not begin with a delimiter line,
	// or could not be read at all. Construction fails with it.
	ErrInvalidFormat = errors.New("reader: invalid format")
	// ErrMalformedRecord is wrapped by every *RecordError.
	ErrMalformedRecord = errors.New("reader: malformed record")
	// ErrUseAfterClose is returned by every operation on a closed Reader.
	ErrUseAfterClose = errors.New("reader: use after close")
)

// RecordError describes one rejected record. The reader has already moved
// past it, so the caller may skip it by calling Next again.
type RecordError struct {
	ID     string
	Line   int // 1-based line of the offending input
	Column int // 1-based column of Symbol, 0 when not symbol related
	Symbol byte
	Reason string
}

func (e *RecordError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("reader: malformed record %q at line %d column %d: %s %q",
			e.ID, e.Line, e.Column, e.Reason, e.Symbol)
	}
	return fmt.Sprintf("reader: malformed record %q at line %d: %s", e.ID, e.Line, e.Reason)
}

func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}
