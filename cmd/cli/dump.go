package main

import (
	"context"
	"errors"
	"fmt"

	"seqscope/internal/common"
	"seqscope/internal/index"
	"seqscope/internal/reader"
	"seqscope/internal/source"
	"seqscope/internal/summary"
	"seqscope/internal/writer"
)

func (s *shell) dumpIterator(iter common.RecordIterator) {
	// Print header
	fmt.Fprintf(s.out, "%-20s %10s  %s\n", "ID", "LENGTH", "DESCRIPTION")
	fmt.Fprintln(s.out)

	count := 0
	for {
		rec, ok, err := iter.Next()
		if err != nil {
			fmt.Fprintf(s.out, "error reading record: %v\n", err)
			return
		}
		if !ok {
			break
		}
		count++

		// Truncate ID if longer than 20 chars
		id := rec.ID
		if len(id) > 20 {
			id = id[:20]
		}
		fmt.Fprintf(s.out, "%-20s %10d  %s\n", id, rec.Len(), rec.Description)
	}

	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "Total records: %d\n", count)
}

func (s *shell) dumpFile(path string) {
	fmt.Fprintf(s.out, "Dumping %s\n", path)
	fmt.Fprintln(s.out)

	err := reader.RunScoped(source.Path(path), func(r *reader.Reader) error {
		s.dumpIterator(r)
		return nil
	}, s.opts...)
	if err != nil {
		fmt.Fprintf(s.out, "failed to read %s: %v\n", path, err)
	}
}

func (s *shell) countFile(path string) {
	n := 0
	err := reader.RunScoped(source.Path(path), func(r *reader.Reader) error {
		for _, err := range r.All() {
			if err != nil {
				return err
			}
			n++
		}
		return nil
	}, s.opts...)
	if err != nil {
		fmt.Fprintf(s.out, "count error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s: %d records\n", path, n)
}

func (s *shell) validateFile(path string) {
	records, malformed := 0, 0
	err := reader.RunScoped(source.Path(path), func(r *reader.Reader) error {
		for {
			_, ok, err := r.Next()
			if errors.Is(err, reader.ErrMalformedRecord) {
				malformed++
				fmt.Fprintf(s.out, "  %v\n", err)
				continue
			}
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			records++
		}
	}, s.opts...)
	switch {
	case err != nil:
		fmt.Fprintf(s.out, "validate error: %v\n", err)
	case malformed > 0:
		fmt.Fprintf(s.out, "%s: %d of %d records malformed\n", path, malformed, records+malformed)
	default:
		fmt.Fprintf(s.out, "%s: ok (%d records)\n", path, records)
	}
}

func (s *shell) stats(paths []string) {
	all, err := summary.Files(context.Background(), paths, s.workers, s.opts...)
	if err != nil {
		fmt.Fprintf(s.out, "stats error: %v\n", err)
		return
	}
	if len(all) > 1 {
		all = append(all, summary.Total(all))
	}
	for _, st := range all {
		fmt.Fprintf(s.out, "%s: records=%d residues=%d min=%d max=%d mean=%.1f n50=%d gc=%.2f%% malformed=%d\n",
			st.Path, st.Records, st.Residues, st.MinLen, st.MaxLen, st.MeanLen(), st.N50, st.GCFraction*100, st.Malformed)
	}
}

func (s *shell) indexFile(path string) {
	ix, err := index.Build(path, s.opts...)
	if err != nil {
		fmt.Fprintf(s.out, "index error: %v\n", err)
		return
	}
	out := common.IndexPath(path)
	if err := index.Save(ix, out); err != nil {
		fmt.Fprintf(s.out, "index error: %v\n", err)
		return
	}
	s.indexes.Put(path, ix)
	fmt.Fprintf(s.out, "indexed %d records -> %s\n", ix.Len(), out)
}

func (s *shell) get(path, id string) {
	ix, err := s.indexes.Index(path, s.opts...)
	if err != nil {
		fmt.Fprintf(s.out, "get error: %v\n", err)
		return
	}
	rec, err := ix.Fetch(path, id, s.opts...)
	if errors.Is(err, index.ErrStaleIndex) {
		if ix, err = index.Build(path, s.opts...); err == nil {
			s.indexes.Put(path, ix)
			rec, err = ix.Fetch(path, id, s.opts...)
		}
	}
	if err != nil {
		fmt.Fprintf(s.out, "get error: %v\n", err)
		return
	}
	w := writer.New(s.out, s.width)
	if err := w.Write(rec); err != nil {
		fmt.Fprintf(s.out, "get error: %v\n", err)
		return
	}
	w.Flush()
}
