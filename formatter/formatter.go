// Package formatter renders tokenizer results and failures for terminals.
package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/gnolang/syntax/tokenizer"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	valueStyle   = color.New(color.FgGreen)
	noStyle      = color.New(color.FgWhite)
)

// Position converts a byte offset into a 1-based line and rune column.
func Position(source string, offset int) (line, col int) {
	offset = max(0, min(offset, len(source)))
	before := source[:offset]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	col = tokenizer.Column(before[lineStart:], offset-lineStart) + 1
	return line, col
}

// lineAt returns the source line containing offset, without its newline.
func lineAt(source string, offset int) string {
	offset = max(0, min(offset, len(source)))
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	end := strings.IndexByte(source[offset:], '\n')
	if end < 0 {
		return source[start:]
	}
	return source[start : offset+end]
}

// Diagnostic renders a tokenizer failure in the compiler-style layout:
//
//	error: no usable module
//	 --> file.txt:1:4
//	  |
//	1 | 12+x
//	  |    ^
//	  = modules: NUMBER /[0-9]+/, PLUS /\+/
func Diagnostic(filename string, err *tokenizer.Error) string {
	line, col := Position(err.Input, err.Pos)
	width := len(fmt.Sprintf("%d", line))
	padding := strings.Repeat(" ", width+1)

	var sb strings.Builder
	sb.WriteString(errorStyle.Sprint("error: "))
	sb.WriteString(ruleStyle.Sprintf("%s\n", err.Reason()))
	sb.WriteString(lineStyle.Sprintf("%s--> ", strings.Repeat(" ", width)))
	sb.WriteString(fileStyle.Sprintf("%s:%d:%d\n", filename, line, col))
	sb.WriteString(lineStyle.Sprintf("%s|\n", padding))
	sb.WriteString(lineStyle.Sprintf("%*d | ", width, line))
	sb.WriteString(noStyle.Sprintf("%s\n", tokenizer.Visible(lineAt(err.Input, err.Pos))))
	sb.WriteString(lineStyle.Sprintf("%s| ", padding))
	sb.WriteString(strings.Repeat(" ", col-1))
	sb.WriteString(messageStyle.Sprint("^\n"))
	sb.WriteString(lineStyle.Sprintf("%s= ", padding))
	sb.WriteString(messageStyle.Sprintf("modules: %s\n", strings.Join(err.Modules, ", ")))
	return sb.String()
}

// Tokens lists tokens one per line as "line:col NAME "value"".
func Tokens(filename, source string, tokens []tokenizer.Token) string {
	var sb strings.Builder
	sb.WriteString(fileStyle.Sprintf("%s\n", filename))
	for _, tok := range tokens {
		line, col := Position(source, tok.Start())
		sb.WriteString(lineStyle.Sprintf("%6s ", fmt.Sprintf("%d:%d", line, col)))
		sb.WriteString(ruleStyle.Sprintf("%-12s ", tok.Name()))
		sb.WriteString(valueStyle.Sprintf("%q\n", tok.Value()))
	}
	return sb.String()
}
