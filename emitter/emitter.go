// Package emitter renders a token stream or an AST back to config
// source text (spec.md §4.4). Token-mode emission is the basis for
// the round-trip invariants in spec.md §8: emitting the unmodified
// output of the lexer or preprocessor must reproduce the original
// source byte-for-byte modulo the transformations that phase
// performed.
package emitter

import (
	"strings"

	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/ast"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

// Tokens concatenates each token's Literal() in order, skipping EOF,
// reconstructing source text from a token stream.
func Tokens(tokens []token.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.Kind == token.EOF {
			continue
		}
		sb.WriteString(t.Literal())
	}
	return sb.String()
}

// AST renders a parsed statement list back to config syntax. It does
// not reproduce the original formatting (comments and blank lines are
// gone by the time an AST exists) but is semantically equivalent
// source that would re-lex and re-parse to the same tree.
func AST(nodes []ast.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
