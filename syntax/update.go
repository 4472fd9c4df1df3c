package syntax

import "github.com/gnolang/syntax/tokenizer"

// Skip drops the token and keeps the cursor.
func Skip(cursor *Node, _ tokenizer.Token) (*Node, error) {
	return cursor, nil
}

// Append adds the token as a leaf under the cursor and keeps the cursor.
func Append(cursor *Node, tok tokenizer.Token) (*Node, error) {
	cursor.AddValue(tok)
	return cursor, nil
}

// Descend adds the token under the cursor and makes it the new cursor.
func Descend(cursor *Node, tok tokenizer.Token) (*Node, error) {
	return cursor.AddValue(tok), nil
}

// Ascend moves the cursor to its parent without keeping the token.
// At the root the cursor stays put.
func Ascend(cursor *Node, _ tokenizer.Token) (*Node, error) {
	if cursor.IsRoot() {
		return cursor, nil
	}
	return cursor.Parent(), nil
}

// Is returns a predicate matching tokens produced by any of the given
// rules, for use with Node.Leave.
func Is(ids ...string) func(tokenizer.Token) bool {
	return func(tok tokenizer.Token) bool {
		name := tok.Name()
		for _, id := range ids {
			if name == id {
				return true
			}
		}
		return false
	}
}

// Not negates a token predicate.
func Not(pred func(tokenizer.Token) bool) func(tokenizer.Token) bool {
	return func(tok tokenizer.Token) bool { return !pred(tok) }
}
