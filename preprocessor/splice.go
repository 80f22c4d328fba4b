package preprocessor

import "github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"

// spliceEscapedNewlines implements phase C: a BACKSLASH immediately
// followed by a NEWLINE joins the two physical lines into one logical
// line by dropping both tokens. This is what lets a #define body span
// multiple source lines.
func spliceEscapedNewlines(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if tokens[i].Kind == token.BACKSLASH && i+1 < len(tokens) && tokens[i+1].Kind == token.NEWLINE {
			i++
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}
