package preprocessor

import (
	"strings"

	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/diag"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/macro"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

// expandMacroUse expands the macro invocation at tokens[i] (a WORD
// already confirmed to name a definition in table) and returns the
// fully expanded replacement tokens plus the index of the last token
// of the invocation consumed from tokens (the macro name itself for
// an object-like macro, or the closing ')' for a function-like call).
//
// expanding names the macros currently being expanded on this call
// stack; a macro that would expand into itself, directly or through a
// chain of other macros, is left as a literal token instead of
// recursing forever (the spec's Open Question on self-referential
// macros is resolved this way, generalized to mutual recursion).
func (p *Preprocessor) expandMacroUse(tokens []token.Token, i int, table *macro.Table, expanding map[string]bool) ([]token.Token, int, error) {
	t := tokens[i]
	def, _ := table.Lookup(t.Text)
	if expanding[def.Name] {
		return []token.Token{t}, i, nil
	}

	if !def.HasParams {
		expanding[def.Name] = true
		result, err := p.expandBody(def.Body, table, expanding)
		delete(expanding, def.Name)
		return result, i, err
	}

	j := skipLayout(tokens, i+1)
	if j >= len(tokens) || tokens[j].Kind != token.L_ROUND {
		// A function-like macro's name with no call parens after it
		// is not an invocation; leave it as a plain word.
		return []token.Token{t}, i, nil
	}

	args, end, err := parseMacroArgs(tokens, j)
	if err != nil {
		return nil, 0, err
	}
	if !argCountMatches(def, args) {
		return nil, 0, diag.NewPreprocessError(t.Pos, "macro %s expects %d argument(s), got %d", def.Name, len(def.Params), len(args))
	}

	argMap := make(map[string][]token.Token, len(def.Params))
	for idx, name := range def.Params {
		if idx < len(args) {
			argMap[name] = args[idx]
		}
	}

	substituted := substituteParams(def.Body, argMap, def.Params)

	expanding[def.Name] = true
	result, err := p.expandBody(substituted, table, expanding)
	delete(expanding, def.Name)
	return result, end, err
}

func argCountMatches(def *macro.Definition, args [][]token.Token) bool {
	if len(args) == len(def.Params) {
		return true
	}
	// "M()" against a zero-parameter macro parses as one empty
	// argument, not zero; accept that shape too.
	return len(def.Params) == 0 && len(args) == 1 && len(args[0]) == 0
}

// expandBody rescans tokens (a macro body, already parameter
// substituted if applicable) for further macro invocations.
func (p *Preprocessor) expandBody(tokens []token.Token, table *macro.Table, expanding map[string]bool) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.Kind == token.WORD {
			if _, ok := table.Lookup(t.Text); ok {
				expanded, next, err := p.expandMacroUse(tokens, i, table, expanding)
				if err != nil {
					return nil, err
				}
				out = append(out, expanded...)
				i = next
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// parseMacroArgs reads the comma-separated, paren-balanced argument
// list starting at tokens[lparen] (the '(' itself) and returns one
// token slice per argument (leading/trailing layout trimmed) plus the
// index of the matching ')'.
func parseMacroArgs(tokens []token.Token, lparen int) ([][]token.Token, int, error) {
	depth := 0
	var args [][]token.Token
	var current []token.Token

	i := lparen
	for ; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case token.L_ROUND:
			depth++
			if depth == 1 {
				continue
			}
		case token.R_ROUND:
			depth--
			if depth == 0 {
				args = append(args, trimLayout(current))
				return args, i, nil
			}
		case token.COMMA:
			if depth == 1 {
				args = append(args, trimLayout(current))
				current = nil
				continue
			}
		case token.EOF:
			return nil, 0, diag.NewMissingToken(token.R_ROUND, &tokens[lparen])
		}
		current = append(current, t)
	}
	return nil, 0, diag.NewMissingToken(token.R_ROUND, &tokens[lparen])
}

func trimLayout(toks []token.Token) []token.Token {
	start := 0
	for start < len(toks) && isLayout(toks[start].Kind) {
		start++
	}
	end := len(toks)
	for end > start && isLayout(toks[end-1].Kind) {
		end--
	}
	return toks[start:end]
}

// substituteParams replaces parameter references in body with their
// argument token slices. A '#' before a parameter name (with or
// without layout between them) stringifies that one argument instead (the spec's narrow, single
// token form of stringify): its tokens' literal text is concatenated
// and wrapped in a quoted WORD so the result round-trips through the
// token model the same way any other string literal does.
func substituteParams(body []token.Token, args map[string][]token.Token, params []string) []token.Token {
	isParam := func(name string) bool {
		for _, p := range params {
			if p == name {
				return true
			}
		}
		return false
	}

	out := make([]token.Token, 0, len(body))
	for i := 0; i < len(body); i++ {
		bt := body[i]

		if bt.Kind == token.HASH {
			k := skipLayout(body, i+1)
			if k < len(body) && body[k].Kind == token.WORD && isParam(body[k].Text) {
				text := literalOf(args[body[k].Text])
				out = append(out,
					token.Token{Kind: token.DOUBLE_QUOTE, Text: `"`, Pos: bt.Pos},
					token.Token{Kind: token.WORD, Text: text, Pos: bt.Pos},
					token.Token{Kind: token.DOUBLE_QUOTE, Text: `"`, Pos: bt.Pos},
				)
				i = k
				continue
			}
		}

		if bt.Kind == token.WORD {
			if argToks, ok := args[bt.Text]; ok {
				out = append(out, argToks...)
				continue
			}
		}

		out = append(out, bt)
	}
	return out
}

func literalOf(toks []token.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.Literal())
	}
	return sb.String()
}
