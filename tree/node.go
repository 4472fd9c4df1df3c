// Package tree provides a mutable, parent-linked tree with ordered children.
//
// A node owns its children exclusively: adding a node somewhere else first
// detaches it from its current parent. Parent links are navigation only.
package tree

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Node is a tree node holding a value of type V.
type Node[V any] struct {
	value    V
	parent   *Node[V]
	children []*Node[V]
}

// New returns a detached root node holding v.
func New[V any](v V) *Node[V] {
	return &Node[V]{value: v}
}

func (n *Node[V]) Value() V         { return n.value }
func (n *Node[V]) SetValue(v V)     { n.value = v }
func (n *Node[V]) Parent() *Node[V] { return n.parent }
func (n *Node[V]) IsRoot() bool     { return n.parent == nil }
func (n *Node[V]) Len() int         { return len(n.children) }

// Children returns the children in insertion order. The slice is a copy.
func (n *Node[V]) Children() []*Node[V] {
	return slices.Clone(n.children)
}

// Child returns the i-th child, or nil if i is out of range.
func (n *Node[V]) Child(i int) *Node[V] {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Last returns the last child, or nil for a leaf.
func (n *Node[V]) Last() *Node[V] {
	return n.Child(len(n.children) - 1)
}

// Add appends child to n's children and returns child. A child that already
// has a parent is removed from it first. Adding n itself or one of n's
// ancestors would create a cycle and panics.
func (n *Node[V]) Add(child *Node[V]) *Node[V] {
	for a := n; a != nil; a = a.parent {
		if a == child {
			panic("tree: adding a node under itself or its descendant")
		}
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// AddValue wraps v in a new node, appends it and returns the new node.
func (n *Node[V]) AddValue(v V) *Node[V] {
	return n.Add(New(v))
}

// Detach removes n from its parent's children. Detaching a root is a no-op.
func (n *Node[V]) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

// Index returns n's position among its siblings, or -1 for a root.
func (n *Node[V]) Index() int {
	if n.parent == nil {
		return -1
	}
	return n.parent.indexOf(n)
}

func (n *Node[V]) indexOf(child *Node[V]) int {
	return slices.Index(n.children, child)
}

// Root returns the top of the tree n belongs to.
func (n *Node[V]) Root() *Node[V] {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth is the number of edges between n and its root.
func (n *Node[V]) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Leave walks toward the root while pred holds for the current node's
// value. It returns the first node whose value fails pred, or the root.
func (n *Node[V]) Leave(pred func(V) bool) *Node[V] {
	cur := n
	for cur.parent != nil && pred(cur.value) {
		cur = cur.parent
	}
	return cur
}

// Pull moves up to count of the siblings directly preceding n under n.
// They are placed before n's existing children in their original order.
// Nothing happens for count <= 0, for a root, or for a first child.
func (n *Node[V]) Pull(count int) {
	p := n.parent
	if count <= 0 || p == nil {
		return
	}
	i := p.indexOf(n)
	count = min(count, i)
	if count <= 0 {
		return
	}

	moved := slices.Clone(p.children[i-count : i])
	p.children = slices.Delete(p.children, i-count, i)
	for _, m := range moved {
		m.parent = n
	}
	n.children = slices.Insert(n.children, 0, moved...)
}

// Ancestors yields n's parent, its parent, and so on up to the root.
func (n *Node[V]) Ancestors() iter.Seq[*Node[V]] {
	return func(yield func(*Node[V]) bool) {
		for p := n.parent; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}

// All yields n and every descendant in pre-order.
func (n *Node[V]) All() iter.Seq[*Node[V]] {
	return func(yield func(*Node[V]) bool) {
		n.walk(yield)
	}
}

func (n *Node[V]) walk(yield func(*Node[V]) bool) bool {
	if !yield(n) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// Size counts n and all of its descendants.
func (n *Node[V]) Size() int {
	size := 0
	for range n.All() {
		size++
	}
	return size
}

// String renders the subtree, one node per line, children indented.
func (n *Node[V]) String() string {
	var sb strings.Builder
	n.render(&sb, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func (n *Node[V]) render(sb *strings.Builder, depth int) {
	fmt.Fprintf(sb, "%s%v\n", strings.Repeat("  ", depth), n.value)
	for _, c := range n.children {
		c.render(sb, depth+1)
	}
}
