package reader

import (
	"fmt"

	"seqscope/internal/common"
	"seqscope/internal/source"

	"go.uber.org/multierr"
)

// RunScoped opens a source, hands a Reader over it to body, and releases the
// source when body returns or panics. If construction fails the source is
// closed before returning.
//
// When both body and the release fail, the result is a multierr whose first
// element is body's error; errors.Is matches either.
func RunScoped(open source.Opener, body func(*Reader) error, optFns ...Option) (err error) {
	src, err := open()
	if err != nil {
		return fmt.Errorf("reader: open source: %w", err)
	}

	r, err := New(src, optFns...)
	if err != nil {
		if cerr := src.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("reader: release source: %w", cerr))
		}
		return err
	}

	defer func() {
		if cerr := r.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("reader: release source: %w", cerr))
		}
	}()

	return body(r)
}

// Collect reads every record of the source into memory inside a scope.
func Collect(open source.Opener, optFns ...Option) ([]common.Record, error) {
	var records []common.Record
	err := RunScoped(open, func(r *Reader) error {
		for rec, err := range r.All() {
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	}, optFns...)
	if err != nil {
		return nil, err
	}
	return records, nil
}
