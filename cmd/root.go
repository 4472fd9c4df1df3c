package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/syntax/config"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:              "syntax [paths...]",
	Short:            "syntax - tokenize text with pattern lexicons and evaluate rule trees",
	Args:             cobra.ArbitraryArgs,
	SilenceUsage:     true,
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// no subcommand
		if len(args) == 0 {
			return cmd.Help()
		}
		// Format: syntax [path1 path2 ...] => behaves like the tokenize subcommand
		return tokenizeCmd.RunE(cmd, args)
	},
}

func Execute() error {
	defer func() { _ = logger.Sync() }()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "Lexicon configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Stop processing after this long")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(watchCmd)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// loadLexicon reads the configured lexicon. A missing file at the default
// location falls back to the built-in lexicon.
func loadLexicon() (*config.Lexicon, error) {
	lex, err := config.Load(cfgFile)
	if errors.Is(err, os.ErrNotExist) && cfgFile == config.DefaultPath {
		logger.Debug("No configuration file, using default lexicon", zap.String("path", cfgFile))
		return config.Default(), nil
	}
	return lex, err
}
