/*
Package syntax folds a token stream into a computed tree using user-supplied rules.

# Rules

A Rule pairs an anchored pattern with two functions:

  - an UpdateFunc deciding where the matched token goes in the tree. It receives
    the current cursor node and the token and returns the new cursor. Returning the
    cursor unchanged skips the token, adding a child and returning it descends,
    walking up with tree.Node.Leave ascends.

  - a ComputeFunc producing the node's value from its token and its children's
    values, which are computed first and handed over in insertion order.

Rules are identified by their id. Ids must be unique within one Syntax.

# Processing

Syntax.Process tokenizes the input with the rules as modules, in declaration
order, and applies each token's rule to a fresh synthetic root. The returned
Tree is evaluated lazily: nothing is computed until Tree.Compute,
Tree.Results or Tree.ComputeNode is called, and every call recomputes.

	sum := func(n *syntax.Node, children iter.Seq[int]) (int, error) {
		total := 0
		for v := range children {
			total += v
		}
		return total, nil
	}
	s, err := syntax.New([]*syntax.Rule[int]{
		syntax.MustRule("NUMBER", `[0-9]+`, number, syntax.Append),
		syntax.MustRule("PLUS", `\+`, sum, syntax.Skip),
	})
	tree, err := s.Process("1+2+3")
	values, err := tree.Results() // [1 2 3]

Errors returned by update and compute functions reach the caller unchanged.
*/
package syntax
