package syntax

import (
	"errors"
	"fmt"
	"iter"

	"github.com/gnolang/syntax/tokenizer"
	"github.com/gnolang/syntax/tree"
)

// Node is a tree node holding the token a rule was applied to.
type Node = tree.Node[tokenizer.Token]

// ComputeFunc produces a node's value from the node and its children's
// values, in child order.
type ComputeFunc[V any] func(n *Node, children iter.Seq[V]) (V, error)

// UpdateFunc places tok relative to cursor and returns the next cursor.
type UpdateFunc func(cursor *Node, tok tokenizer.Token) (*Node, error)

var errNilUpdate = errors.New("nil update function")

// Rule is a tokenizer module that also knows how to grow and evaluate the
// tree. Two rules with the same id are considered the same rule.
type Rule[V any] struct {
	*tokenizer.PatternModule
	compute ComputeFunc[V]
	update  UpdateFunc
}

var _ tokenizer.Module = (*Rule[int])(nil)

// NewRule compiles pattern for the rule identified by id. compute may be nil
// for rules whose tokens never end up in the tree.
func NewRule[V any](id, pattern string, compute ComputeFunc[V], update UpdateFunc) (*Rule[V], error) {
	if update == nil {
		return nil, fmt.Errorf("rule %s: %w", id, errNilUpdate)
	}
	m, err := tokenizer.NewPatternModule(id, pattern)
	if err != nil {
		return nil, err
	}
	return &Rule[V]{PatternModule: m, compute: compute, update: update}, nil
}

// MustRule is like NewRule but panics on error.
func MustRule[V any](id, pattern string, compute ComputeFunc[V], update UpdateFunc) *Rule[V] {
	r, err := NewRule(id, pattern, compute, update)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Rule[V]) ID() string { return r.Name() }

// Equal reports whether both rules share an id.
func (r *Rule[V]) Equal(other *Rule[V]) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ID() == other.ID()
}

// Update applies the rule's update function.
func (r *Rule[V]) Update(cursor *Node, tok tokenizer.Token) (*Node, error) {
	return r.update(cursor, tok)
}
