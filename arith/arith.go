// Package arith is a small calculator built on syntax rules. It supports
// + - * / with the usual precedence, left associativity and parentheses.
// Numbers are non-negative decimals; there is no unary minus.
package arith

import (
	"errors"
	"fmt"
	"iter"
	"strconv"

	"github.com/gnolang/syntax/syntax"
	"github.com/gnolang/syntax/tokenizer"
)

const (
	Whitespace = "WS"
	Number     = "NUMBER"
	Plus       = "PLUS"
	Minus      = "MINUS"
	Times      = "TIMES"
	Divide     = "DIVIDE"
	LParen     = "LPAREN"
	RParen     = "RPAREN"
)

var (
	ErrOperandCount    = errors.New("wrong number of operands")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrUnbalancedParen = errors.New("unbalanced parenthesis")
	ErrEmptyExpression = errors.New("empty expression")
)

var (
	isOperator       = syntax.Is(Plus, Minus, Times, Divide)
	isMultiplicative = syntax.Is(Times, Divide)
	isOpen           = syntax.Is(LParen)
)

// Rules returns the calculator's rules in tokenizer priority order.
func Rules() []*syntax.Rule[float64] {
	return []*syntax.Rule[float64]{
		syntax.MustRule[float64](Whitespace, `\s+`, nil, syntax.Skip),
		syntax.MustRule(Number, `[0-9]+(?:\.[0-9]+)?`, number, syntax.Append),
		syntax.MustRule(Plus, `\+`, binary(add), infix(isOperator)),
		syntax.MustRule(Minus, `-`, binary(sub), infix(isOperator)),
		syntax.MustRule(Times, `\*`, binary(mul), infix(isMultiplicative)),
		syntax.MustRule(Divide, `/`, binary(div), infix(isMultiplicative)),
		syntax.MustRule(LParen, `\(`, group, syntax.Descend),
		syntax.MustRule[float64](RParen, `\)`, nil, closeGroup),
	}
}

// infix climbs out of the operators that bind at least as tightly, then
// takes the preceding sibling as the left operand.
func infix(binds func(tokenizer.Token) bool) syntax.UpdateFunc {
	return func(cursor *syntax.Node, tok tokenizer.Token) (*syntax.Node, error) {
		n := cursor.Leave(binds).AddValue(tok)
		n.Pull(1)
		return n, nil
	}
}

func closeGroup(cursor *syntax.Node, tok tokenizer.Token) (*syntax.Node, error) {
	open := cursor.Leave(syntax.Not(isOpen))
	if !isOpen(open.Value()) {
		return nil, fmt.Errorf("%w: ')' at %d", ErrUnbalancedParen, tok.Start())
	}
	return open.Parent(), nil
}

func number(n *syntax.Node, _ iter.Seq[float64]) (float64, error) {
	return strconv.ParseFloat(n.Value().Value(), 64)
}

func group(n *syntax.Node, children iter.Seq[float64]) (float64, error) {
	values := collect(children)
	if len(values) != 1 {
		return 0, operandError(n, 1, len(values))
	}
	return values[0], nil
}

func binary(op func(a, b float64) (float64, error)) syntax.ComputeFunc[float64] {
	return func(n *syntax.Node, children iter.Seq[float64]) (float64, error) {
		values := collect(children)
		if len(values) != 2 {
			return 0, operandError(n, 2, len(values))
		}
		return op(values[0], values[1])
	}
}

func add(a, b float64) (float64, error) { return a + b, nil }
func sub(a, b float64) (float64, error) { return a - b, nil }
func mul(a, b float64) (float64, error) { return a * b, nil }

func div(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

func collect(children iter.Seq[float64]) []float64 {
	var values []float64
	for v := range children {
		values = append(values, v)
	}
	return values
}

func operandError(n *syntax.Node, want, got int) error {
	tok := n.Value()
	return fmt.Errorf("%w: %q at %d takes %d, got %d", ErrOperandCount, tok.Value(), tok.Start(), want, got)
}
