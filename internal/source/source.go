package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"
)

// Opener acquires a fresh byte source. Whoever calls it owns the result.
type Opener func() (io.ReadCloser, error)

// Stdin is the path that Path maps to standard input.
const Stdin = "-"

var gzipMagic = []byte{0x1f, 0x8b}

// File opens path, decompressing it when it starts with the gzip magic.
func File(path string) Opener {
	return func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		rc, err := detect(f, f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("source: %s: %w", path, err)
		}
		return rc, nil
	}
}

// Path is File, except that "-" reads standard input. Closing a stdin
// source does not close os.Stdin.
func Path(path string) Opener {
	if path != Stdin {
		return File(path)
	}
	return func() (io.ReadCloser, error) {
		return detect(os.Stdin, noClose{})
	}
}

// Bytes serves an in-memory buffer.
func Bytes(data []byte) Opener {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

// String serves an in-memory string.
func String(s string) Opener {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

// IsGzip reports whether the file at path starts with the gzip magic.
func IsGzip(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	var magic [2]byte
	n, err := io.ReadFull(f, magic[:])
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.Equal(magic[:n], gzipMagic), nil
}

func detect(r io.Reader, c io.Closer) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(gzipMagic))
	if err != nil || !bytes.Equal(magic, gzipMagic) {
		// short or empty input is left for the record reader to judge
		return &plainSource{Reader: br, closer: c}, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return &gzipSource{zr: zr, closer: c}, nil
}

type noClose struct{}

func (noClose) Close() error { return nil }

type plainSource struct {
	*bufio.Reader
	closer io.Closer
}

func (s *plainSource) Close() error {
	return s.closer.Close()
}

type gzipSource struct {
	zr     *gzip.Reader
	closer io.Closer
}

func (s *gzipSource) Read(p []byte) (int, error) {
	return s.zr.Read(p)
}

func (s *gzipSource) Close() error {
	return multierr.Combine(s.zr.Close(), s.closer.Close())
}
