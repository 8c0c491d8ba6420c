package common

import (
	"encoding/binary"
	"io"
	"math"
)

func WriteUint32(w io.Writer, v uint32) (int, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return w.Write(buf[:])
}

func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func WriteUint64(w io.Writer, v uint64) (int, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return w.Write(buf[:])
}

func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func WriteBytes(w io.Writer, data []byte) (int, error) {
	return w.Write(data)
}

// ReadBytes reads exactly length bytes. length usually comes from a prefix on
// disk, so it is checked against what r actually holds before allocating.
func ReadBytes(r io.Reader, length uint64) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	if l, ok := r.(interface{ Len() int }); ok && length > uint64(l.Len()) {
		return nil, io.ErrUnexpectedEOF
	}
	if length > math.MaxInt64 {
		return nil, io.ErrUnexpectedEOF
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(length)))
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) < length {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}

// WriteString writes a uint32 length prefix followed by the string bytes.
func WriteString(w io.Writer, s string) (int, error) {
	n, err := WriteUint32(w, uint32(len(s)))
	if err != nil {
		return n, err
	}
	m, err := io.WriteString(w, s)
	return n + m, err
}

// ReadString reads a string written by WriteString.
func ReadString(r io.Reader) (string, error) {
	length, err := ReadUint32(r)
	if err != nil {
		return "", err
	}
	data, err := ReadBytes(r, uint64(length))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
