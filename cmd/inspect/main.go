package main

import (
	"fmt"
	"io"
	"os"

	"seqscope/internal/alphabet"
	"seqscope/internal/common"
	"seqscope/internal/index"
	"seqscope/internal/reader"
	"seqscope/internal/source"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file.fa|file%s>\n", os.Args[0], common.IndexExt)
		os.Exit(1)
	}

	path := os.Args[1]
	var err error
	switch {
	case common.IsIndexPath(path):
		err = inspectIndex(os.Stdout, path)
	case common.IsRecordPath(path), path == source.Stdin:
		err = inspectRecords(os.Stdout, path)
	default:
		err = fmt.Errorf("unknown file type: %s (expected a FASTA file or %s)", path, common.IndexExt)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// inspectRecords lists every record with the offset of its delimiter line.
// Symbols are not checked so damaged files can still be looked at.
func inspectRecords(out io.Writer, path string) error {
	fmt.Fprintf(out, "Inspecting records: %s\n\n", path)

	count := 0
	err := reader.RunScoped(source.Path(path), func(r *reader.Reader) error {
		for rec, err := range r.All() {
			if err != nil {
				return err
			}
			off, err := r.Offset()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Record %d: offset=%d length=%d id=%q\n", count, off, rec.Len(), rec.ID)
			count++
		}
		return nil
	}, reader.WithAlphabet(alphabet.Any), reader.WithPolicy(alphabet.PolicyPermissive), reader.WithEmptyRecords(true))
	if err != nil {
		return fmt.Errorf("error reading record: %w", err)
	}

	fmt.Fprintf(out, "\nTotal records: %d\n", count)
	return nil
}

func inspectIndex(out io.Writer, path string) error {
	fmt.Fprintf(out, "Inspecting index: %s\n\n", path)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() < index.FOOTER_SIZE {
		return fmt.Errorf("%w: %d bytes", index.ErrCorruptIndex, info.Size())
	}
	footer, err := index.ReadFooter(io.NewSectionReader(f, info.Size()-index.FOOTER_SIZE, index.FOOTER_SIZE))
	if err != nil {
		return fmt.Errorf("failed to read footer: %w", err)
	}
	fmt.Fprintf(out, "Footer: source_size=%d filter_offset=%d entries=%d magic=%#x\n\n",
		footer.SourceSize, footer.FilterOffset, footer.EntryCount, footer.Magic)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	ix, err := index.Read(f)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Entries (record start offsets):")
	fmt.Fprintln(out)
	for i, e := range ix.Entries() {
		fmt.Fprintf(out, "Record %d: offset=%d length=%d id=%q\n", i, e.Offset, e.Length, e.ID)
	}
	fmt.Fprintf(out, "\nTotal records: %d\n", ix.Len())
	return nil
}
