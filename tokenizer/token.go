package tokenizer

import (
	"fmt"
	"strconv"
)

// Token is the immutable result of one successful module match.
type Token struct {
	module Module
	groups []string
	start  int
	end    int
}

// NewToken builds a token from a source text and the submatch index pairs
// returned by Module.MatchAt. Unmatched optional groups become "".
func NewToken(m Module, text string, loc []int) Token {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		lo, hi := loc[2*i], loc[2*i+1]
		if lo >= 0 && hi >= 0 {
			groups[i] = text[lo:hi]
		}
	}
	return Token{module: m, groups: groups, start: loc[0], end: loc[1]}
}

// Module returns the module that produced the token. The zero Token has none.
func (t Token) Module() Module { return t.module }

// Name returns the producing module's name, or "" for the zero Token.
func (t Token) Name() string {
	if t.module == nil {
		return ""
	}
	return t.module.Name()
}

// Value is the whole matched text.
func (t Token) Value() string {
	if len(t.groups) == 0 {
		return ""
	}
	return t.groups[0]
}

// Group returns capture group i (0 is the whole match), or "" if out of range.
func (t Token) Group(i int) string {
	if i < 0 || i >= len(t.groups) {
		return ""
	}
	return t.groups[i]
}

// Groups returns a copy of all captured groups, the whole match first.
func (t Token) Groups() []string {
	out := make([]string, len(t.groups))
	copy(out, t.groups)
	return out
}

// Span returns the absolute [start, end) range in the source.
func (t Token) Span() (start, end int) { return t.start, t.end }

func (t Token) Start() int { return t.start }
func (t Token) End() int   { return t.end }
func (t Token) Len() int   { return t.end - t.start }

// IsZero reports whether t is the zero Token, as stored in synthetic roots.
func (t Token) IsZero() bool { return t.module == nil }

func (t Token) String() string {
	if t.IsZero() {
		return "<root>"
	}
	return fmt.Sprintf("%s:%s", t.Name(), strconv.Quote(t.Value()))
}

// GoString includes the span, which String leaves out.
func (t Token) GoString() string {
	return fmt.Sprintf("%s[%d,%d)", t.String(), t.start, t.end)
}
