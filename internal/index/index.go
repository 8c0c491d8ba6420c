package index

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"seqscope/internal/common"
	"seqscope/internal/filter"
	"seqscope/internal/reader"
	"seqscope/internal/source"

	"go.uber.org/zap"
)

// Index File Layout:
//
//                 ┌────────────────┐
//                 │  Entry Block   │  numEntries uint32, then entries in file order
// filterOffset -> ├────────────────┤
//                 │  Filter Block  │  bloom filter over record IDs
// footerOffset -> ├────────────────┤
//                 │     Footer     │  {sourceSize, filterOffset, entryCount, magic}
//                 └────────────────┘

var (
	ErrNotFound     = errors.New("index: record not found")
	ErrDuplicateID  = errors.New("index: duplicate record id")
	ErrNotSeekable  = errors.New("index: compressed sources cannot be indexed")
	ErrCorruptIndex = errors.New("index: corrupt index")
	ErrStaleIndex   = errors.New("index: source changed since index was built")
)

// Index maps record identifiers to their position in a plain source file.
type Index struct {
	entries    []Entry
	byID       map[string]int
	filter     filter.Filter
	sourceSize int64
}

// Build scans path once and records where each record starts. Under a strict
// policy a malformed record aborts the build.
func Build(path string, opts ...reader.Option) (*Index, error) {
	start := time.Now()

	gz, err := source.IsGzip(path)
	if err != nil {
		return nil, err
	}
	if gz {
		return nil, fmt.Errorf("%w: %s", ErrNotSeekable, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	ix := &Index{byID: make(map[string]int), sourceSize: info.Size()}
	err = reader.RunScoped(source.File(path), func(r *reader.Reader) error {
		for {
			rec, ok, err := r.Next()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			off, err := r.Offset()
			if err != nil {
				return err
			}
			if err := ix.add(Entry{ID: rec.ID, Offset: off, Length: uint64(rec.Len())}); err != nil {
				return err
			}
		}
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("index: build %s: %w", path, err)
	}

	ix.filter = filter.NewBloomFilterFor(len(ix.entries))
	for _, e := range ix.entries {
		ix.filter.Add(e.ID)
	}

	common.LogDuration(start, "built index", zap.String("path", path), zap.Int("records", len(ix.entries)))
	return ix, nil
}

func (ix *Index) add(e Entry) error {
	if _, dup := ix.byID[e.ID]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateID, e.ID)
	}
	ix.byID[e.ID] = len(ix.entries)
	ix.entries = append(ix.entries, e)
	return nil
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entries returns the entries in file order. Callers must not modify them.
func (ix *Index) Entries() []Entry {
	return ix.entries
}

// SourceSize is the size of the indexed file at build time.
func (ix *Index) SourceSize() int64 {
	return ix.sourceSize
}

// Lookup finds the entry for id.
func (ix *Index) Lookup(id string) (Entry, bool) {
	if !ix.filter.MayContain(id) {
		return Entry{}, false
	}
	i, ok := ix.byID[id]
	if !ok {
		return Entry{}, false
	}
	return ix.entries[i], true
}

// Fetch reads the record id from path, seeking straight to it.
func (ix *Index) Fetch(path, id string, opts ...reader.Option) (common.Record, error) {
	e, ok := ix.Lookup(id)
	if !ok {
		return common.Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	open := func() (io.ReadCloser, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, err
		}
		if info.Size() != ix.sourceSize || e.Offset >= info.Size() {
			f.Close()
			return nil, fmt.Errorf("%w: %s", ErrStaleIndex, path)
		}
		section := io.NewSectionReader(f, e.Offset, info.Size()-e.Offset)
		return struct {
			io.Reader
			io.Closer
		}{section, f}, nil
	}

	var rec common.Record
	err := reader.RunScoped(open, func(r *reader.Reader) error {
		got, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok || got.ID != id {
			return fmt.Errorf("%w: %s: expected %q at offset %d", ErrStaleIndex, path, id, e.Offset)
		}
		rec = got
		return nil
	}, opts...)
	if err != nil {
		if errors.Is(err, reader.ErrInvalidFormat) {
			err = fmt.Errorf("%w: %w", ErrStaleIndex, err)
		}
		return common.Record{}, err
	}
	return rec, nil
}

// Write serializes the index. Returns the number of bytes written.
func Write(w io.Writer, ix *Index) (int, error) {
	var buf bytes.Buffer

	if _, err := common.WriteUint32(&buf, uint32(len(ix.entries))); err != nil {
		return 0, err
	}
	for i := range ix.entries {
		if err := ix.entries[i].Encode(&buf); err != nil {
			return 0, err
		}
	}

	filterOffset := uint64(buf.Len())
	if _, err := filter.WriteBloomFilter(&buf, ix.filter); err != nil {
		return 0, err
	}

	footer := &Footer{
		SourceSize:   uint64(ix.sourceSize),
		FilterOffset: filterOffset,
		EntryCount:   uint32(len(ix.entries)),
		Magic:        magic,
	}
	if _, err := WriteFooter(&buf, footer); err != nil {
		return 0, err
	}

	return w.Write(buf.Bytes())
}

// Read deserializes an index written by Write.
func Read(r io.Reader) (*Index, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < FOOTER_SIZE {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the footer", ErrCorruptIndex, len(data))
	}

	footerOffset := len(data) - FOOTER_SIZE
	footer, err := ReadFooter(bytes.NewReader(data[footerOffset:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptIndex, err)
	}
	if footer.Magic != magic {
		return nil, fmt.Errorf("%w: bad magic %#x", ErrCorruptIndex, footer.Magic)
	}
	if footer.FilterOffset > uint64(footerOffset) {
		return nil, fmt.Errorf("%w: filter offset %d out of range", ErrCorruptIndex, footer.FilterOffset)
	}

	entries := bytes.NewReader(data[:footer.FilterOffset])
	count, err := common.ReadUint32(entries)
	if err != nil || count != footer.EntryCount {
		return nil, fmt.Errorf("%w: entry count mismatch", ErrCorruptIndex)
	}

	ix := &Index{
		entries:    make([]Entry, 0, count),
		byID:       make(map[string]int, count),
		sourceSize: int64(footer.SourceSize),
	}
	for i := uint32(0); i < count; i++ {
		e, err := DecodeEntry(entries)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrCorruptIndex, i, err)
		}
		if err := ix.add(*e); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptIndex, err)
		}
	}

	ix.filter, err = filter.ReadBloomFilter(bytes.NewReader(data[footer.FilterOffset:footerOffset]))
	if err != nil {
		return nil, fmt.Errorf("%w: filter: %w", ErrCorruptIndex, err)
	}
	return ix, nil
}

// Save atomically writes the index to indexPath, usually common.IndexPath(source).
func Save(ix *Index, indexPath string) error {
	tmpPath := indexPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	if _, err := Write(f, ix); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, indexPath)
}

// Load reads an index file.
func Load(indexPath string) (*Index, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
