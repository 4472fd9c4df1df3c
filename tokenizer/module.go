package tokenizer

import (
	"fmt"
	"regexp"
)

// Module is a single matching unit tried by the Tokenizer.
type Module interface {
	// Name identifies the module in tokens and diagnostics.
	Name() string
	// Pattern returns the source of the module's pattern.
	Pattern() string
	// MatchAt reports the submatch index pairs of a match that starts
	// exactly at pos, looking no further than end. Indices are absolute.
	MatchAt(text string, pos, end int) ([]int, bool)
}

var _ Module = (*PatternModule)(nil)

// PatternModule wraps one regular expression anchored at the cursor.
type PatternModule struct {
	name    string
	pattern string
	re      *regexp.Regexp
}

// NewPatternModule compiles pattern so that it only matches at the
// position it is tried at.
func NewPatternModule(name, pattern string) (*PatternModule, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", name, err)
	}
	return &PatternModule{name: name, pattern: pattern, re: re}, nil
}

// MustPatternModule is like NewPatternModule but panics on a bad pattern.
func MustPatternModule(name, pattern string) *PatternModule {
	m, err := NewPatternModule(name, pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *PatternModule) Name() string    { return m.name }
func (m *PatternModule) Pattern() string { return m.pattern }

// Groups returns the number of capture groups, not counting the whole match.
func (m *PatternModule) Groups() int { return m.re.NumSubexp() }

func (m *PatternModule) MatchAt(text string, pos, end int) ([]int, bool) {
	if pos < 0 || pos > end || end > len(text) {
		return nil, false
	}
	loc := m.re.FindStringSubmatchIndex(text[pos:end])
	if loc == nil {
		return nil, false
	}
	for i := range loc {
		if loc[i] >= 0 {
			loc[i] += pos
		}
	}
	return loc, true
}

func (m *PatternModule) String() string {
	return fmt.Sprintf("%s /%s/", m.name, m.pattern)
}
