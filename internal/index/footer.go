package index

import (
	"io"

	"seqscope/internal/common"
)

const (
	// FOOTER_SIZE is the size of the footer in bytes.
	FOOTER_SIZE = 8 + 8 + 4 + 4

	// magic spells "SQI1" little-endian.
	magic uint32 = 0x31495153
)

// Footer is the last FOOTER_SIZE bytes of an index file.
type Footer struct {
	SourceSize   uint64 // size of the indexed file when the index was built
	FilterOffset uint64 // offset where the filter block starts
	EntryCount   uint32
	Magic        uint32
}

// WriteFooter writes the footer to the given writer.
func WriteFooter(w io.Writer, f *Footer) (int, error) {
	total := 0
	for _, write := range []func() (int, error){
		func() (int, error) { return common.WriteUint64(w, f.SourceSize) },
		func() (int, error) { return common.WriteUint64(w, f.FilterOffset) },
		func() (int, error) { return common.WriteUint32(w, f.EntryCount) },
		func() (int, error) { return common.WriteUint32(w, f.Magic) },
	} {
		n, err := write()
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadFooter reads a footer from the reader.
func ReadFooter(r io.Reader) (*Footer, error) {
	sourceSize, err := common.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	filterOffset, err := common.ReadUint64(r)
	if err != nil {
		return nil, err
	}
	entryCount, err := common.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	m, err := common.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	return &Footer{
		SourceSize:   sourceSize,
		FilterOffset: filterOffset,
		EntryCount:   entryCount,
		Magic:        m,
	}, nil
}
