package syntax

import (
	"fmt"
	"slices"

	"github.com/gnolang/syntax/tokenizer"
)

// Tree is the result of Syntax.Process. Its values are computed on demand.
type Tree[V any] struct {
	syntax *Syntax[V]
	root   *Node
	cursor *Node
	tokens []tokenizer.Token
}

// Root returns the synthetic root. Its token is the zero Token.
func (t *Tree[V]) Root() *Node { return t.root }

// Cursor returns the cursor left by the last applied rule.
func (t *Tree[V]) Cursor() *Node { return t.cursor }

// Tokens returns the tokens the tree was built from, in source order.
func (t *Tree[V]) Tokens() []tokenizer.Token { return slices.Clone(t.tokens) }

// Compute evaluates every top-level node and discards the values.
func (t *Tree[V]) Compute() error {
	_, err := t.Results()
	return err
}

// Results evaluates the top-level nodes and returns their values in order.
func (t *Tree[V]) Results() ([]V, error) {
	results := make([]V, 0, t.root.Len())
	for _, c := range t.root.Children() {
		v, err := t.compute(c)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// ComputeNode evaluates the subtree rooted at n, which must belong to t.
func (t *Tree[V]) ComputeNode(n *Node) (V, error) {
	var zero V
	if n == t.root {
		return zero, ErrSyntheticRoot
	}
	if n.Root() != t.root {
		return zero, ErrForeignNode
	}
	return t.compute(n)
}

func (t *Tree[V]) compute(n *Node) (V, error) {
	var zero V

	children := n.Children()
	results := make([]V, 0, len(children))
	for _, c := range children {
		v, err := t.compute(c)
		if err != nil {
			return zero, err
		}
		results = append(results, v)
	}

	id := n.Value().Name()
	r, ok := t.syntax.rules[id]
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrUnknownRule, id)
	}
	if r.compute == nil {
		return zero, fmt.Errorf("rule %s: %w", id, ErrNoCompute)
	}
	return r.compute(n, slices.Values(results))
}

func (t *Tree[V]) String() string { return t.root.String() }
