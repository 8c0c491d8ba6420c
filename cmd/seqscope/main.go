package main

import (
	"fmt"
	"os"

	"seqscope/internal/alphabet"
	"seqscope/internal/common"
	"seqscope/internal/config"
	"seqscope/internal/reader"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	alphabet   string
	policy     string
	allowEmpty bool
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	// ownLogger is set when the logger was built here and must be synced.
	ownLogger bool
}

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. A nil logger is built from the
// configuration on first use.
func newRootCmd(logger *zap.Logger) *cobra.Command {
	a := &app{logger: logger}

	rootCmd := &cobra.Command{
		Use:   "seqscope",
		Short: "Read, validate, index and summarize FASTA record files",
		Long: `seqscope reads FASTA-style record files through a scoped reader that
always releases its source, whether a command finishes, fails or stops early.

Files may be plain or gzip-compressed; "-" reads standard input.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.ownLogger && a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "seqscope.yaml", "config file (.yaml, .yml or .toml)")
	flags.StringVarP(&a.alphabet, "alphabet", "a", "", fmt.Sprintf("payload alphabet (%v)", alphabet.Names()))
	flags.StringVarP(&a.policy, "policy", "p", "", "symbol policy: strict or permissive")
	flags.BoolVar(&a.allowEmpty, "allow-empty", false, "accept records without payload lines")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newDumpCmd(a),
		newCountCmd(a),
		newValidateCmd(a),
		newStatsCmd(a),
		newIndexCmd(a),
		newGetCmd(a),
		newFormatCmd(a),
	)
	return rootCmd
}

// setup loads the config file, applies flag overrides and installs the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("alphabet") {
		cfg.Reader.Alphabet = a.alphabet
	}
	if flags.Changed("policy") {
		cfg.Reader.Policy = a.policy
	}
	if flags.Changed("allow-empty") {
		cfg.Reader.AllowEmpty = a.allowEmpty
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := cfg.Logging.BuildLogger(a.verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
		a.ownLogger = true
	}
	common.SetLogger(a.logger)
	return nil
}

func (a *app) readerOptions() ([]reader.Option, error) {
	opts, err := a.cfg.ReaderOptions()
	if err != nil {
		return nil, err
	}
	return append(opts, reader.WithLogger(a.logger)), nil
}
