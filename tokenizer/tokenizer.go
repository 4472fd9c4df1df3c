package tokenizer

import (
	"fmt"
	"strings"
)

// Tokenizer segments text with an ordered list of modules. At every
// cursor position the first module that matches wins.
type Tokenizer struct {
	modules []Module
}

// New returns a Tokenizer trying modules in the given order.
func New(modules ...Module) *Tokenizer {
	ms := make([]Module, len(modules))
	copy(ms, modules)
	return &Tokenizer{modules: ms}
}

// Modules returns the configured modules in priority order.
func (t *Tokenizer) Modules() []Module {
	ms := make([]Module, len(t.modules))
	copy(ms, t.modules)
	return ms
}

// TokenizeAll tokenizes the whole text.
func (t *Tokenizer) TokenizeAll(text string) ([]Token, error) {
	return t.Tokenize(text, 0, len(text))
}

// Tokenize scans text[start:end] left to right. Bounds are clamped to the
// text; start >= end yields no tokens and no error.
func (t *Tokenizer) Tokenize(text string, start, end int) ([]Token, error) {
	start = clamp(start, 0, len(text))
	end = clamp(end, 0, len(text))

	var tokens []Token
	cursor := start
	for cursor < end {
		tok, err := t.next(text, cursor, end)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		cursor = tok.end
	}
	return tokens, nil
}

func (t *Tokenizer) next(text string, cursor, end int) (Token, error) {
	for _, m := range t.modules {
		loc, ok := m.MatchAt(text, cursor, end)
		if !ok {
			continue
		}
		if loc[1] <= loc[0] {
			return Token{}, t.fail(ZeroWidthMatch, text, cursor, m.Name())
		}
		return NewToken(m, text, loc), nil
	}
	return Token{}, t.fail(NoUsableModule, text, cursor, "")
}

func (t *Tokenizer) fail(kind Kind, text string, pos int, module string) *Error {
	return &Error{
		Kind:    kind,
		Input:   text,
		Pos:     pos,
		Module:  module,
		Modules: t.describe(),
	}
}

func (t *Tokenizer) describe() []string {
	out := make([]string, len(t.modules))
	for i, m := range t.modules {
		out[i] = fmt.Sprintf("%s /%s/", m.Name(), m.Pattern())
	}
	return out
}

func (t *Tokenizer) String() string {
	return "Tokenizer[" + strings.Join(t.describe(), ", ") + "]"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
