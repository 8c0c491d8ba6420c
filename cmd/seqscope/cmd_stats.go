package main

import (
	"fmt"
	"io"
	"time"

	"seqscope/internal/common"
	"seqscope/internal/summary"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newStatsCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "stats <file>...",
		Short: "Summarize record counts, lengths, N50 and GC content",
		Long: `stats reads each file with its own scoped reader, several files at a time.
Malformed records are skipped and counted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.readerOptions()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Workers
			}

			start := time.Now()
			all, err := summary.Files(cmd.Context(), args, workers, opts...)
			if err != nil {
				return err
			}
			common.LogDuration(start, "summarized files", zap.Int("files", len(all)), zap.Int("workers", workers))

			printStats(cmd.OutOrStdout(), all)
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "files summarized concurrently")
	return cmd
}

func printStats(out io.Writer, all []summary.Stats) {
	fmt.Fprintf(out, "%-30s %8s %12s %8s %8s %10s %8s %6s %9s\n",
		"FILE", "RECORDS", "RESIDUES", "MIN", "MAX", "MEAN", "N50", "GC%", "MALFORMED")
	row := func(s summary.Stats) {
		fmt.Fprintf(out, "%-30s %8d %12d %8d %8d %10.1f %8d %6.2f %9d\n",
			s.Path, s.Records, s.Residues, s.MinLen, s.MaxLen, s.MeanLen(), s.N50, s.GCFraction*100, s.Malformed)
	}
	for _, s := range all {
		row(s)
	}
	if len(all) > 1 {
		row(summary.Total(all))
	}
}
