package main

import (
	"fmt"

	"seqscope/internal/common"
	"seqscope/internal/index"
	"seqscope/internal/reader"
	"seqscope/internal/source"
)

func (s *shell) inspectFile(path string) {
	switch {
	case common.IsIndexPath(path):
		s.inspectIndex(path)
	case common.IsRecordPath(path), path == source.Stdin:
		s.inspectRecords(path)
	default:
		fmt.Fprintf(s.out, "unknown file type: %s (expected a FASTA file or %s)\n", path, common.IndexExt)
	}
}

func (s *shell) inspectRecords(path string) {
	fmt.Fprintf(s.out, "Inspecting records: %s\n", path)
	fmt.Fprintln(s.out)

	gz, err := source.IsGzip(path)
	if err != nil && path != source.Stdin {
		fmt.Fprintf(s.out, "failed to open %s: %v\n", path, err)
		return
	}

	var count int
	var residues int64
	var first, last string
	err = reader.RunScoped(source.Path(path), func(r *reader.Reader) error {
		for rec, err := range r.All() {
			if err != nil {
				return err
			}
			if count == 0 {
				first = rec.ID
			}
			last = rec.ID
			count++
			residues += int64(rec.Len())
		}
		return nil
	}, s.opts...)
	if err != nil {
		fmt.Fprintf(s.out, "error reading record: %v\n", err)
		return
	}

	fmt.Fprintf(s.out, "Compressed: %t\n", gz)
	fmt.Fprintf(s.out, "Total records: %d\n", count)
	fmt.Fprintf(s.out, "Total residues: %d\n", residues)
	if count > 0 {
		fmt.Fprintf(s.out, "First: %s\nLast: %s\n", first, last)
	}
	fmt.Fprintln(s.out)
}

func (s *shell) inspectIndex(path string) {
	fmt.Fprintf(s.out, "Inspecting index: %s\n", path)
	fmt.Fprintln(s.out)

	ix, err := index.Load(path)
	if err != nil {
		fmt.Fprintf(s.out, "failed to open index: %v\n", err)
		return
	}

	fmt.Fprintf(s.out, "Source size: %d\n", ix.SourceSize())
	fmt.Fprintf(s.out, "Total records: %d\n", ix.Len())
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Entries (record start offsets):")
	fmt.Fprintln(s.out)

	for i, e := range ix.Entries() {
		fmt.Fprintf(s.out, "Record %d: offset=%d length=%d id=%q\n", i, e.Offset, e.Length, e.ID)
	}
	fmt.Fprintln(s.out)
}
