package formatter

import "github.com/gnolang/syntax/tokenizer"

// Record is the JSON form of a token.
type Record struct {
	Module string   `json:"module"`
	Value  string   `json:"value"`
	Groups []string `json:"groups,omitempty"`
	Start  int      `json:"start"`
	End    int      `json:"end"`
	Line   int      `json:"line"`
	Col    int      `json:"col"`
}

// Records converts tokens for JSON output. Groups are only kept for
// patterns with capture groups.
func Records(source string, tokens []tokenizer.Token) []Record {
	out := make([]Record, len(tokens))
	for i, tok := range tokens {
		line, col := Position(source, tok.Start())
		rec := Record{
			Module: tok.Name(),
			Value:  tok.Value(),
			Start:  tok.Start(),
			End:    tok.End(),
			Line:   line,
			Col:    col,
		}
		if groups := tok.Groups(); len(groups) > 1 {
			rec.Groups = groups[1:]
		}
		out[i] = rec
	}
	return out
}
