package main

import (
	"fmt"

	"seqscope/internal/reader"
	"seqscope/internal/source"
	"seqscope/internal/writer"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newFormatCmd(a *app) *cobra.Command {
	var (
		width  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Rewrite a file with payload lines wrapped to a fixed width",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			opts, err := a.readerOptions()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Output.LineWidth
			}

			if output == "" || output == source.Stdin {
				w := writer.New(cmd.OutOrStdout(), width)
				if err := reader.RunScoped(source.Path(args[0]), func(r *reader.Reader) error {
					_, err := w.WriteAll(r)
					return err
				}, opts...); err != nil {
					return err
				}
				return w.Flush()
			}

			fw, err := writer.Create(output, width)
			if err != nil {
				return err
			}
			defer func() {
				err = multierr.Append(err, fw.Close())
			}()
			err = reader.RunScoped(source.Path(args[0]), func(r *reader.Reader) error {
				for rec, err := range r.All() {
					if err != nil {
						return err
					}
					if err := fw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			}, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records to %s\n", fw.Len(), fw.Path())
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", writer.DefaultWidth, "payload line width, 0 for a single line")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
