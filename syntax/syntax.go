package syntax

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gnolang/syntax/tokenizer"
	"github.com/gnolang/syntax/tree"
)

var (
	ErrDuplicateRule = errors.New("duplicate rule id")
	ErrUnknownRule   = errors.New("token produced by unknown rule")
	ErrNilCursor     = errors.New("update function returned nil cursor")
	ErrNoCompute     = errors.New("rule has no compute function")
	ErrForeignNode   = errors.New("node does not belong to this tree")
	ErrSyntheticRoot = errors.New("synthetic root cannot be computed")
)

type options struct {
	logger *zap.Logger
}

// Option configures a Syntax.
type Option func(*options)

// WithLogger sets the logger receiving debug output for every fold step.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Syntax tokenizes input with a fixed rule set and folds the tokens into a
// tree. It keeps no state between calls.
type Syntax[V any] struct {
	tokenizer *tokenizer.Tokenizer
	rules     map[string]*Rule[V]
	logger    *zap.Logger
}

// New builds a Syntax whose tokenizer tries rules in the given order.
func New[V any](rules []*Rule[V], opts ...Option) (*Syntax[V], error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	registry := make(map[string]*Rule[V], len(rules))
	modules := make([]tokenizer.Module, 0, len(rules))
	for _, r := range rules {
		if _, ok := registry[r.ID()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, r.ID())
		}
		registry[r.ID()] = r
		modules = append(modules, r)
	}

	return &Syntax[V]{
		tokenizer: tokenizer.New(modules...),
		rules:     registry,
		logger:    o.logger,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew[V any](rules []*Rule[V], opts ...Option) *Syntax[V] {
	s, err := New(rules, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Syntax[V]) Tokenizer() *tokenizer.Tokenizer { return s.tokenizer }

// Rule looks a rule up by id.
func (s *Syntax[V]) Rule(id string) (*Rule[V], bool) {
	r, ok := s.rules[id]
	return r, ok
}

// Process builds the tree for the whole text.
func (s *Syntax[V]) Process(text string) (*Tree[V], error) {
	return s.ProcessRange(text, 0, len(text))
}

// ProcessFrom builds the tree for text[start:].
func (s *Syntax[V]) ProcessFrom(text string, start int) (*Tree[V], error) {
	return s.ProcessRange(text, start, len(text))
}

// ProcessRange builds the tree for text[start:end]. Token spans stay
// relative to the whole text.
func (s *Syntax[V]) ProcessRange(text string, start, end int) (*Tree[V], error) {
	tokens, err := s.tokenizer.Tokenize(text, start, end)
	if err != nil {
		return nil, err
	}

	root := tree.New(tokenizer.Token{})
	cursor := root
	for _, tok := range tokens {
		r, ok := s.rules[tok.Name()]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, tok.Name())
		}
		next, err := r.Update(cursor, tok)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID(), ErrNilCursor)
		}
		s.logger.Debug("applied rule",
			zap.String("rule", r.ID()),
			zap.Int("start", tok.Start()),
			zap.Int("end", tok.End()),
			zap.Int("depth", next.Depth()),
		)
		cursor = next
	}

	s.logger.Debug("tree built",
		zap.Int("tokens", len(tokens)),
		zap.Int("nodes", root.Size()-1),
	)
	return &Tree[V]{syntax: s, root: root, cursor: cursor, tokens: tokens}, nil
}
