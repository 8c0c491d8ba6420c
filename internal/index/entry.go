package index

import (
	"io"

	"seqscope/internal/common"
)

// Entry Layout:
//
// ┌──────────────────┐
// │      idLen       │  uint32
// ├──────────────────┤
// │        id        │  []byte
// ├──────────────────┤
// │      offset      │  uint64 - delimiter line offset in the source
// ├──────────────────┤
// │      length      │  uint64 - payload symbols
// └──────────────────┘

// Entry locates one record inside its source file.
type Entry struct {
	ID     string
	Offset int64
	Length uint64
}

// Encode writes an entry to the given writer.
func (e *Entry) Encode(w io.Writer) error {
	if _, err := common.WriteString(w, e.ID); err != nil {
		return err
	}
	if _, err := common.WriteUint64(w, uint64(e.Offset)); err != nil {
		return err
	}
	_, err := common.WriteUint64(w, e.Length)
	return err
}

// DecodeEntry reads a single entry.
func DecodeEntry(r io.Reader) (*Entry, error) {
	id, err := common.ReadString(r)
	if err != nil {
		return nil, err
	}
	offset, err := common.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	length, err := common.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	return &Entry{ID: id, Offset: int64(offset), Length: length}, nil
}
