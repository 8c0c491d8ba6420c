package main

import (
	"errors"
	"fmt"
	"io/fs"

	"seqscope/internal/common"
	"seqscope/internal/index"
	"seqscope/internal/reader"
	"seqscope/internal/writer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newIndexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "index <file>...",
		Short: "Build a random access index (<file>.sqi) for each plain file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.readerOptions()
			if err != nil {
				return err
			}
			for _, path := range args {
				ix, err := index.Build(path, opts...)
				if err != nil {
					return err
				}
				out := common.IndexPath(path)
				if err := index.Save(ix, out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: indexed %d records -> %s\n", path, ix.Len(), out)
			}
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "get <file> <id>...",
		Short: "Print records by identifier",
		Long: `get fetches records by seeking straight to them. It uses <file>.sqi when
present and current, and otherwise indexes the file in memory first.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.readerOptions()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Output.LineWidth
			}

			path := args[0]
			ix, err := loadOrBuild(path, opts)
			if err != nil {
				return err
			}

			w := writer.New(cmd.OutOrStdout(), width)
			for _, id := range args[1:] {
				rec, err := ix.Fetch(path, id, opts...)
				if errors.Is(err, index.ErrStaleIndex) {
					common.Logger().Info("index is stale, rebuilding", zap.String("path", path))
					if ix, err = index.Build(path, opts...); err != nil {
						return err
					}
					rec, err = ix.Fetch(path, id, opts...)
				}
				if err != nil {
					return err
				}
				if err := w.Write(rec); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&width, "width", writer.DefaultWidth, "payload line width, 0 for a single line")
	return cmd
}

// loadOrBuild prefers the saved index next to path.
func loadOrBuild(path string, opts []reader.Option) (*index.Index, error) {
	ix, err := index.Load(common.IndexPath(path))
	if err == nil {
		return ix, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		common.Logger().Warn("ignoring unreadable index", zap.String("path", path), zap.Error(err))
	}
	return index.Build(path, opts...)
}
