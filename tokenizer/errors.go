package tokenizer

import (
	"errors"
	"fmt"
)

var (
	ErrNoUsableModule = errors.New("no usable module")
	ErrZeroWidthMatch = errors.New("zero width match")
)

// Kind classifies a tokenizer failure.
type Kind int

const (
	NoUsableModule Kind = iota
	ZeroWidthMatch
)

func (k Kind) String() string {
	switch k {
	case NoUsableModule:
		return "NoUsableModule"
	case ZeroWidthMatch:
		return "ZeroWidthMatch"
	default:
		return "Unknown"
	}
}

// Error reports where and why tokenization stopped. Its message is the
// caret diagram produced by Diagnose.
type Error struct {
	Kind    Kind
	Input   string
	Pos     int
	Module  string   // module that matched zero width; empty otherwise
	Modules []string // configured modules, in order, as "name /pattern/"
}

// Reason is the one-line cause shown under the caret.
func (e *Error) Reason() string {
	if e.Kind == ZeroWidthMatch {
		return fmt.Sprintf("%s for %s", ErrZeroWidthMatch, e.Module)
	}
	return ErrNoUsableModule.Error()
}

func (e *Error) Error() string {
	return Diagnose(e.Input, e.Pos, e.Reason(), e.Modules)
}

func (e *Error) Unwrap() error {
	if e.Kind == ZeroWidthMatch {
		return ErrZeroWidthMatch
	}
	return ErrNoUsableModule
}
