package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gnolang/syntax/arith"
	"github.com/gnolang/syntax/formatter"
	"github.com/gnolang/syntax/syntax"
	"github.com/gnolang/syntax/tokenizer"
)

var evalCmd = &cobra.Command{
	Use:   "eval [expressions...]",
	Short: "Evaluate arithmetic expressions",
	Long: `Evaluates + - * / expressions with parentheses.
Example) syntax eval "1 + 2 * 3" "(1 + 2) * 3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calc := arith.New(syntax.WithLogger(logger))
		out := cmd.OutOrStdout()

		failed := 0
		for _, expr := range args {
			v, err := calc.Eval(expr)
			if err != nil {
				printExprError(out, expr, err)
				failed++
				continue
			}
			fmt.Fprintf(out, "%s = %s\n", expr, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d expressions %w", failed, len(args), errFailed)
		}
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree [expression]",
	Short: "Print the tree built for an arithmetic expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calc := arith.New(syntax.WithLogger(logger))
		t, err := calc.Parse(args[0])
		if err != nil {
			printExprError(cmd.OutOrStdout(), args[0], err)
			return fmt.Errorf("expression %w", errFailed)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return nil
	},
}

func printExprError(w io.Writer, expr string, err error) {
	var terr *tokenizer.Error
	if errors.As(err, &terr) {
		fmt.Fprint(w, formatter.Diagnostic("<expr>", terr))
		return
	}
	fmt.Fprintf(w, "error: %s: %v\n", expr, err)
}
