package writer

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"

	"seqscope/internal/common"
)

// DefaultWidth is the conventional payload line width.
const DefaultWidth = 60

// Writer emits records in the delimiter convention: a ">ID Description"
// line followed by the payload wrapped at Width columns (0 = one line).
type Writer struct {
	bw    *bufio.Writer
	width int
	count int
}

func New(w io.Writer, width int) *Writer {
	if width < 0 {
		width = 0
	}
	return &Writer{bw: bufio.NewWriter(w), width: width}
}

// Write buffers one record. Call Flush to push it to the underlying writer.
func (w *Writer) Write(rec common.Record) error {
	if rec.ID == "" {
		return errors.New("writer: record has no identifier")
	}
	if err := w.bw.WriteByte('>'); err != nil {
		return err
	}
	if _, err := w.bw.WriteString(rec.Header()); err != nil {
		return err
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return err
	}

	seq := rec.Sequence
	for len(seq) > 0 {
		n := len(seq)
		if w.width > 0 && n > w.width {
			n = w.width
		}
		if _, err := w.bw.WriteString(seq[:n]); err != nil {
			return err
		}
		if err := w.bw.WriteByte('\n'); err != nil {
			return err
		}
		seq = seq[n:]
	}
	w.count++
	return nil
}

// WriteAll drains iter into the writer and returns the number of records
// written. iter is not closed.
func (w *Writer) WriteAll(iter common.RecordIterator) (int, error) {
	n := 0
	for {
		rec, ok, err := iter.Next()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		if err := w.Write(rec); err != nil {
			return n, err
		}
		n++
	}
}

func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Len returns the number of records written so far.
func (w *Writer) Len() int {
	return w.count
}

// FileWriter owns the file it writes to.
type FileWriter struct {
	mu   sync.Mutex
	w    *Writer
	file *os.File
	path string
}

// Create truncates (or creates) path and returns a writer over it.
func Create(path string, width int) (*FileWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileWriter{w: New(f, width), file: f, path: path}, nil
}

func (fw *FileWriter) Write(rec common.Record) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.file == nil {
		return errors.New("writer: file is closed")
	}
	return fw.w.Write(rec)
}

func (fw *FileWriter) Path() string {
	return fw.path
}

func (fw *FileWriter) Len() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.w.Len()
}

// Close flushes, syncs and releases the file. Safe to call multiple times.
func (fw *FileWriter) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.file == nil {
		return nil
	}
	err := fw.w.Flush()
	if err == nil {
		err = fw.file.Sync()
	}
	if cerr := fw.file.Close(); err == nil {
		err = cerr
	}
	fw.file = nil
	return err
}
