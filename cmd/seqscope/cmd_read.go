package main

import (
	"errors"
	"fmt"
	"io"

	"seqscope/internal/common"
	"seqscope/internal/reader"
	"seqscope/internal/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>...",
		Short: "List the records of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.readerOptions()
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := dumpFile(cmd.OutOrStdout(), path, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func dumpFile(out io.Writer, path string, opts []reader.Option) error {
	fmt.Fprintf(out, "Dumping %s\n\n", path)
	fmt.Fprintf(out, "%-20s %10s  %s\n", "ID", "LENGTH", "DESCRIPTION")

	count := 0
	err := reader.RunScoped(source.Path(path), func(r *reader.Reader) error {
		for rec, err := range r.All() {
			if err != nil {
				return err
			}
			count++
			id := rec.ID
			if len(id) > 20 {
				id = id[:20]
			}
			fmt.Fprintf(out, "%-20s %10d  %s\n", id, rec.Len(), rec.Description)
		}
		return nil
	}, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(out, "\nTotal records: %d\n", count)
	return nil
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count <file>...",
		Short: "Count the records of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.readerOptions()
			if err != nil {
				return err
			}
			for _, path := range args {
				n, err := countRecords(path, opts)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", path, n)
			}
			return nil
		},
	}
}

func countRecords(path string, opts []reader.Option) (int, error) {
	n := 0
	err := reader.RunScoped(source.Path(path), func(r *reader.Reader) error {
		for _, err := range r.All() {
			if err != nil {
				return err
			}
			n++
		}
		return nil
	}, opts...)
	return n, err
}

var errInvalidFiles = errors.New("validation failed")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check every record and report the malformed ones",
		Long: `validate reads every record, reporting each malformed one with its
line and offending symbol, and keeps going. It fails if any file is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.readerOptions()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			bad := 0
			for _, path := range args {
				records, malformed, err := validateFile(out, path, opts)
				switch {
				case err != nil:
					fmt.Fprintf(out, "%s: %v\n", path, err)
					bad++
				case malformed > 0:
					fmt.Fprintf(out, "%s: %d of %d records malformed\n", path, malformed, records+malformed)
					bad++
				default:
					fmt.Fprintf(out, "%s: ok (%d records)\n", path, records)
				}
			}
			if bad > 0 {
				return fmt.Errorf("%w: %d of %d files", errInvalidFiles, bad, len(args))
			}
			return nil
		},
	}
}

// validateFile skips malformed records and reports them to out.
func validateFile(out io.Writer, path string, opts []reader.Option) (records, malformed int, err error) {
	err = reader.RunScoped(source.Path(path), func(r *reader.Reader) error {
		for {
			_, ok, err := r.Next()
			var recErr *reader.RecordError
			switch {
			case errors.As(err, &recErr):
				malformed++
				fmt.Fprintf(out, "  %v\n", recErr)
				common.Logger().Debug("skipping malformed record",
					zap.String("path", path), zap.String("id", recErr.ID))
				continue
			case err != nil:
				return err
			case !ok:
				return nil
			}
			records++
		}
	}, opts...)
	return records, malformed, err
}
