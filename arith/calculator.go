package arith

import (
	"fmt"

	"github.com/gnolang/syntax/syntax"
)

// Calculator evaluates arithmetic expressions.
type Calculator struct {
	syntax *syntax.Syntax[float64]
}

// New returns a Calculator; opts are passed to the underlying Syntax.
func New(opts ...syntax.Option) *Calculator {
	return &Calculator{syntax: syntax.MustNew(Rules(), opts...)}
}

// Parse builds the expression tree without evaluating it.
func (c *Calculator) Parse(expr string) (*syntax.Tree[float64], error) {
	t, err := c.syntax.Process(expr)
	if err != nil {
		return nil, err
	}
	if open := t.Cursor().Leave(syntax.Not(isOpen)); isOpen(open.Value()) {
		return nil, fmt.Errorf("%w: '(' at %d is never closed", ErrUnbalancedParen, open.Value().Start())
	}
	return t, nil
}

// Eval parses and evaluates expr, which must yield exactly one value.
func (c *Calculator) Eval(expr string) (float64, error) {
	t, err := c.Parse(expr)
	if err != nil {
		return 0, err
	}
	values, err := t.Results()
	if err != nil {
		return 0, err
	}
	switch len(values) {
	case 0:
		return 0, ErrEmptyExpression
	case 1:
		return values[0], nil
	default:
		return 0, fmt.Errorf("%w: %d values at top level", ErrOperandCount, len(values))
	}
}

var defaultCalculator = New()

// Eval evaluates expr with a shared Calculator.
func Eval(expr string) (float64, error) {
	return defaultCalculator.Eval(expr)
}
