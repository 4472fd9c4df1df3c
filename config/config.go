// Package config loads tokenizer lexicons from YAML.
//
// A lexicon names the modules to try, in priority order:
//
//	name: words
//	extensions: [".txt"]
//	modules:
//	  - name: WORD
//	    pattern: '[A-Za-z]+'
//	  - name: SPACE
//	    pattern: '\s+'
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/syntax/tokenizer"
)

// DefaultPath is used when no configuration file is given.
const DefaultPath = ".syntax.yaml"

var (
	ErrNoModules       = errors.New("lexicon has no modules")
	ErrUnnamedModule   = errors.New("module has no name")
	ErrDuplicateModule = errors.New("duplicate module name")
)

// Module is one named pattern.
type Module struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// Lexicon is the on-disk tokenizer definition.
type Lexicon struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions,omitempty"`
	Modules    []Module `yaml:"modules"`
}

// Load reads and validates the lexicon at path.
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lex, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lex, nil
}

// Parse decodes and validates a lexicon.
func Parse(r io.Reader) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.NewDecoder(r).Decode(&lex); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoModules
		}
		return nil, err
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return &lex, nil
}

// Validate checks module names and compiles every pattern.
func (l *Lexicon) Validate() error {
	_, err := l.Tokenizer()
	return err
}

// Tokenizer builds a tokenizer trying the modules in file order.
func (l *Lexicon) Tokenizer() (*tokenizer.Tokenizer, error) {
	if len(l.Modules) == 0 {
		return nil, ErrNoModules
	}

	seen := make(map[string]bool, len(l.Modules))
	modules := make([]tokenizer.Module, 0, len(l.Modules))
	for i, m := range l.Modules {
		if m.Name == "" {
			return nil, fmt.Errorf("modules[%d]: %w", i, ErrUnnamedModule)
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateModule, m.Name)
		}
		seen[m.Name] = true

		pm, err := tokenizer.NewPatternModule(m.Name, m.Pattern)
		if err != nil {
			return nil, err
		}
		modules = append(modules, pm)
	}
	return tokenizer.New(modules...), nil
}

// Default is the starter lexicon written by `syntax init`.
func Default() *Lexicon {
	return &Lexicon{
		Name:       "default",
		Extensions: []string{".txt"},
		Modules: []Module{
			{Name: "NUMBER", Pattern: `[0-9]+(?:\.[0-9]+)?`},
			{Name: "WORD", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
			{Name: "SPACE", Pattern: `\s+`},
			{Name: "PUNCT", Pattern: `[[:punct:]]`},
		},
	}
}

// Write stores lex as YAML at path, replacing any existing file.
func Write(path string, lex *Lexicon) error {
	d, err := yaml.Marshal(lex)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
