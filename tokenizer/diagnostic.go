package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// Visible maps control characters to their Unicode control pictures so
// that the whole input fits on a single line with one column per rune.
func Visible(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x20:
			sb.WriteRune(0x2400 + r)
		case r == 0x7f:
			sb.WriteRune('␡')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Column converts a byte offset into the rune column used by the caret line.
func Column(s string, pos int) int {
	if pos > len(s) {
		return utf8.RuneCountInString(s) + pos - len(s)
	}
	if pos < 0 {
		return 0
	}
	return utf8.RuneCountInString(s[:pos])
}

// Diagnose renders the tokenizer failure diagram:
//
//	<input>
//	    ^
//	<reason>
//	modules:
//	  <module>
func Diagnose(input string, pos int, reason string, modules []string) string {
	var sb strings.Builder
	sb.WriteString(Visible(input))
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(" ", Column(input, pos)))
	sb.WriteString("^\n")
	sb.WriteString(reason)
	sb.WriteString("\nmodules:")
	for _, m := range modules {
		sb.WriteString("\n  ")
		sb.WriteString(m)
	}
	return sb.String()
}
