package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/syntax/batch"
	"github.com/gnolang/syntax/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-tokenize files whenever they change",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := loadLexicon()
		if err != nil {
			logger.Error("Failed to load lexicon", zap.String("path", cfgFile), zap.Error(err))
			return err
		}
		tk, err := lex.Tokenizer()
		if err != nil {
			return err
		}

		cache := batch.NewCache(batch.TokenizerProcessor{Tokenizer: tk})
		runner := &batch.Runner{Processor: cache, Logger: logger}
		out := cmd.OutOrStdout()
		handler := func(path string) {
			results, err := runner.ProcessPath(context.Background(), path)
			if err != nil {
				logger.Error("Error processing file", zap.String("file", path), zap.Error(err))
				return
			}
			for _, r := range results {
				printResult(out, r)
			}
		}

		w, err := watch.New(logger, handler, lex.Extensions...)
		if err != nil {
			return err
		}
		defer w.Close()
		if err := w.Add(args...); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		fmt.Fprintf(out, "Watching %d path(s), press Ctrl+C to stop\n", len(args))

		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
