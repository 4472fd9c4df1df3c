package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/syntax/batch"
	"github.com/gnolang/syntax/formatter"
	"github.com/gnolang/syntax/tokenizer"
)

var errFailed = errors.New("failed")

var (
	tokenizeJSON bool
	outPath      string
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [paths...]",
	Short: "Tokenize files or directories with the configured lexicon",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		lex, err := loadLexicon()
		if err != nil {
			logger.Error("Failed to load lexicon", zap.String("path", cfgFile), zap.Error(err))
			return err
		}
		tk, err := lex.Tokenizer()
		if err != nil {
			return err
		}

		runner := &batch.Runner{
			Processor:  batch.TokenizerProcessor{Tokenizer: tk},
			Logger:     logger,
			Extensions: lex.Extensions,
			Progress:   cmd.ErrOrStderr(),
		}
		results, err := runner.ProcessPaths(ctx, args)
		if err != nil {
			return err
		}

		if tokenizeJSON {
			err = writeJSON(cmd.OutOrStdout(), results, outPath)
		} else {
			for _, r := range results {
				printResult(cmd.OutOrStdout(), r)
			}
		}
		if err != nil {
			return err
		}

		if failed := batch.Failed(results); len(failed) > 0 {
			return fmt.Errorf("%d of %d files %w", len(failed), len(results), errFailed)
		}
		return nil
	},
}

func init() {
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "Output tokens in JSON format")
	tokenizeCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

func printResult(w io.Writer, r batch.FileTokens) {
	if r.Err == nil {
		fmt.Fprint(w, formatter.Tokens(r.Path, r.Source, r.Tokens))
		return
	}
	var terr *tokenizer.Error
	if errors.As(r.Err, &terr) {
		fmt.Fprint(w, formatter.Diagnostic(r.Path, terr))
		return
	}
	logger.Error("Error tokenizing file", zap.String("file", r.Path), zap.Error(r.Err))
	fmt.Fprintf(w, "error: %s: %v\n", r.Path, r.Err)
}

type fileReport struct {
	Tokens []formatter.Record `json:"tokens"`
	Error  string             `json:"error,omitempty"`
}

func writeJSON(stdout io.Writer, results []batch.FileTokens, path string) error {
	reports := make(map[string]fileReport, len(results))
	for _, r := range results {
		rep := fileReport{Tokens: formatter.Records(r.Source, r.Tokens)}
		if r.Err != nil {
			rep.Error = r.Err.Error()
		}
		reports[r.Path] = rep
	}

	d, err := json.Marshal(reports)
	if err != nil {
		logger.Error("Error marshalling tokens to JSON", zap.Error(err))
		return err
	}
	if path == "" {
		_, err = fmt.Fprintln(stdout, string(d))
		return err
	}
	return os.WriteFile(path, d, 0o644)
}
