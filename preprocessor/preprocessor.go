// Package preprocessor implements the four-phase token-level
// preprocessing pass described in spec.md §4.2: comment removal,
// #include expansion, escaped-newline splicing, and directive
// processing (#define/#undef/#ifdef/#ifndef/#else/#endif plus macro
// expansion). It is the dominant subsystem of this module: almost
// every interesting edge case in the Arma config dialect lives here
// rather than in the lexer or parser.
package preprocessor

import (
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/diag"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/fileutil"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/macro"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

// Preprocessor runs the four phases over a token stream. A single
// Preprocessor is built per top-level ParseFile/ParseString call and
// is not reused across calls; the include-cycle stack it carries is
// only meaningful for the duration of one call.
type Preprocessor struct {
	resolver *fileutil.Resolver
	sink     *diag.Sink

	// visiting holds the absolute paths currently on the include
	// stack, so a file that (directly or transitively) includes
	// itself is caught as a cyclic-include error rather than
	// recursing until the process runs out of stack.
	visiting map[string]bool
}

// New builds a Preprocessor. resolver may be nil to disable #include
// expansion; any #include directive is then left untouched in the
// output, and the parser turns it into an ast.IncludeStatement.
func New(resolver *fileutil.Resolver, sink *diag.Sink) *Preprocessor {
	return &Preprocessor{
		resolver: resolver,
		sink:     sink,
		visiting: make(map[string]bool),
	}
}

// Preprocess runs all four phases over tokens, which must be the
// lexer's output for file (already including its own trailing EOF).
// table accumulates #define/#undef across the whole call, including
// into and out of #include chains, matching the original
// implementation's single shared define dictionary.
func (p *Preprocessor) Preprocess(tokens []token.Token, file string, table *macro.Table) ([]token.Token, error) {
	tokens, err := removeComments(tokens)
	if err != nil {
		return nil, err
	}

	tokens, err = p.expandIncludes(tokens, file)
	if err != nil {
		return nil, err
	}

	tokens = spliceEscapedNewlines(tokens)

	tokens, err = p.processDirectives(tokens, table)
	if err != nil {
		return nil, err
	}

	return tokens, nil
}
