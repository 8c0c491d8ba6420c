package reader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"

	"seqscope/internal/alphabet"
	"seqscope/internal/common"

	"go.uber.org/zap"
)

const marker = '>'

// Reader produces the records of a delimiter-convention source in file order.
//
// Lifecycle: New returns an open Reader that owns src; Next advances it; Close
// releases src. Closed is terminal. A Reader is not safe for concurrent use.
type Reader struct {
	src  io.ReadCloser
	br   *bufio.Reader
	opts Options
	log  *zap.Logger

	closed bool
	err    error // sticky source read error

	// lookahead: the delimiter line that starts the next record
	pending       []byte
	hasPending    bool
	pendingOffset int64
	pendingLine   int

	offset int64 // bytes consumed from src
	line   int   // lines consumed from src
	last   int64 // offset of the last record returned
}

var _ common.RecordIterator = (*Reader)(nil)

// New takes ownership of src and positions the reader on the first record.
// Leading blank lines are skipped; the first non-blank line must start with
// '>'. On failure the caller keeps ownership of src.
func New(src io.ReadCloser, optFns ...Option) (*Reader, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Alphabet == nil {
		opts.Alphabet = alphabet.Any
	}
	log := opts.Logger
	if log == nil {
		log = common.Logger()
	}

	r := &Reader{
		src:  src,
		br:   bufio.NewReaderSize(src, opts.BufferSize),
		opts: opts,
		log:  log,
		last: -1,
	}

	for {
		start := r.offset
		line, err := r.readLine()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty source", ErrInvalidFormat)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line[0] != marker {
			return nil, fmt.Errorf("%w: line %d: expected %q, found %q",
				ErrInvalidFormat, r.line, marker, preview(line))
		}
		r.setPending(line, start)
		return r, nil
	}
}

// Next returns the next record. ok is false once the source is exhausted,
// and stays false on later calls. A *RecordError leaves the reader usable.
func (r *Reader) Next() (common.Record, bool, error) {
	if r.closed {
		return common.Record{}, false, ErrUseAfterClose
	}
	if r.err != nil {
		return common.Record{}, false, r.err
	}
	if !r.hasPending {
		return common.Record{}, false, nil
	}

	id, desc := common.ParseHeader(string(r.pending[1:]))
	headerLine := r.pendingLine
	r.last = r.pendingOffset
	r.hasPending = false

	var (
		seq      []byte
		payloads int
		bad      *RecordError
	)
	for {
		start := r.offset
		line, err := r.readLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			r.err = fmt.Errorf("reader: line %d: %w", r.line+1, err)
			return common.Record{}, false, r.err
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line[0] == marker {
			r.setPending(line, start)
			break
		}
		payloads++
		if bad == nil && r.opts.Policy == alphabet.PolicyStrict {
			if i := r.opts.Alphabet.FirstInvalid(line); i >= 0 {
				bad = &RecordError{
					ID:     id,
					Line:   r.line,
					Column: i + 1,
					Symbol: line[i],
					Reason: "symbol outside " + r.opts.Alphabet.Name() + " alphabet",
				}
			}
		}
		seq = append(seq, line...)
	}

	switch {
	case id == "":
		bad = &RecordError{Line: headerLine, Reason: "empty identifier"}
	case bad == nil && payloads == 0 && !r.opts.AllowEmpty:
		bad = &RecordError{ID: id, Line: headerLine, Reason: "no payload lines"}
	}
	if bad != nil {
		r.log.Debug("rejected record", zap.String("id", bad.ID), zap.Int("line", bad.Line), zap.String("reason", bad.Reason))
		return common.Record{}, false, bad
	}

	return common.Record{ID: id, Description: desc, Sequence: string(seq)}, true, nil
}

// All adapts Next to a range-over-func sequence. Iteration stops after the
// first error, which is yielded with a zero Record.
func (r *Reader) All() iter.Seq2[common.Record, error] {
	return func(yield func(common.Record, error) bool) {
		for {
			rec, ok, err := r.Next()
			if err != nil {
				yield(common.Record{}, err)
				return
			}
			if !ok {
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Offset returns the byte offset of the delimiter line of the last record
// handed out by Next (including rejected ones), or -1 before the first call.
func (r *Reader) Offset() (int64, error) {
	if r.closed {
		return 0, ErrUseAfterClose
	}
	return r.last, nil
}

// Close releases the source. Safe to call multiple times; only the first
// call reaches the source and reports its error.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	err := r.src.Close()
	r.src = nil
	r.br = nil
	r.pending = nil
	r.log.Debug("released source", zap.Int64("bytes", r.offset), zap.Int("lines", r.line), zap.Error(err))
	return err
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned as-is; io.EOF means nothing was left. A read
// failure wins over a partial line, since the line may be cut short.
func (r *Reader) readLine() ([]byte, error) {
	raw, err := r.br.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(raw) > 0 {
		r.offset += int64(len(raw))
		r.line++
		return bytes.TrimRight(raw, "\r\n"), nil
	}
	return nil, err
}

func (r *Reader) setPending(line []byte, offset int64) {
	r.pending = line
	r.hasPending = true
	r.pendingOffset = offset
	r.pendingLine = r.line
}

func preview(line []byte) string {
	const limit = 16
	if len(line) > limit {
		return string(line[:limit]) + "..."
	}
	return string(line)
}
