package preprocessor

import (
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/diag"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/macro"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

// condFrame tracks one level of #ifdef/#ifndef nesting. active is
// whether tokens under this frame (and all its ancestors) should be
// emitted; it folds in the parent's activity so a branch nested
// inside a skipped branch never re-activates.
type condFrame struct {
	parentActive bool
	taken        bool // did the #ifdef/#ifndef condition itself hold
	inElse       bool
}

func (f condFrame) active() bool {
	if !f.parentActive {
		return false
	}
	if f.inElse {
		return !f.taken
	}
	return f.taken
}

// processDirectives implements phase D: #define/#undef are recorded
// into table and removed from the stream, #ifdef/#ifndef/#else/#endif
// gate which surrounding tokens survive, and every remaining WORD
// naming a defined macro is expanded. Unlike the original
// implementation, nesting depth is tracked even while skipping a
// branch's content, so an #ifdef/#endif pair nested inside a false
// branch can't desynchronize the outer #endif match (the spec's Open
// Question on this is resolved in favor of the safer behavior).
func (p *Preprocessor) processDirectives(tokens []token.Token, table *macro.Table) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	var stack []condFrame

	activeNow := func() bool {
		for _, f := range stack {
			if !f.active() {
				return false
			}
		}
		return true
	}

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]

		switch t.Kind {
		case token.KEYWORD_IFDEF, token.KEYWORD_IFNDEF:
			name, next, err := expectDirectiveName(tokens, i)
			if err != nil {
				return nil, err
			}
			parentActive := activeNow()
			holds := table.Has(name)
			if t.Kind == token.KEYWORD_IFNDEF {
				holds = !holds
			}
			stack = append(stack, condFrame{parentActive: parentActive, taken: holds})
			i = skipToLineEnd(tokens, next+1)
			continue

		case token.KEYWORD_ELSE:
			if len(stack) == 0 {
				return nil, diag.NewPreprocessError(t.Pos, "#else without matching #ifdef/#ifndef")
			}
			top := &stack[len(stack)-1]
			if top.inElse {
				return nil, diag.NewPreprocessError(t.Pos, "duplicate #else")
			}
			top.inElse = true
			i = skipToLineEnd(tokens, i+1)
			continue

		case token.KEYWORD_ENDIF:
			if len(stack) == 0 {
				return nil, diag.NewPreprocessError(t.Pos, "#endif without matching #ifdef/#ifndef")
			}
			stack = stack[:len(stack)-1]
			i = skipToLineEnd(tokens, i+1)
			continue
		}

		if !activeNow() {
			continue
		}

		switch t.Kind {
		case token.KEYWORD_DEFINE:
			def, next, err := parseDefine(tokens, i)
			if err != nil {
				return nil, err
			}
			if prev := table.Define(def); prev != nil {
				p.sink.Warn(diag.MacroRedefined, t.Pos, "macro %s redefined (previous definition at %s)", def.Name, prev.Pos)
			}
			i = next

		case token.KEYWORD_UNDEF:
			name, next, err := expectDirectiveName(tokens, i)
			if err != nil {
				return nil, err
			}
			if !table.Undef(name) {
				p.sink.Warn(diag.UndefUnknownMacro, t.Pos, "#undef of unknown macro %s", name)
			}
			i = skipToLineEnd(tokens, next+1)

		case token.WORD:
			if _, ok := table.Lookup(t.Text); ok {
				expanded, next, err := p.expandMacroUse(tokens, i, table, map[string]bool{})
				if err != nil {
					return nil, err
				}
				out = append(out, expanded...)
				i = next
				continue
			}
			out = append(out, t)

		default:
			out = append(out, t)
		}
	}

	if len(stack) > 0 {
		return nil, diag.NewPreprocessError(tokens[len(tokens)-1].Pos, "unterminated #ifdef/#ifndef: %d block(s) still open", len(stack))
	}

	return out, nil
}

// expectDirectiveName reads the WORD naming the macro for #ifdef,
// #ifndef or #undef, skipping the single run of layout tokens between
// the directive keyword and the name.
func expectDirectiveName(tokens []token.Token, i int) (string, int, error) {
	j := skipLayout(tokens, i+1)
	if j >= len(tokens) || tokens[j].Kind != token.WORD {
		pos := tokens[i].Pos
		if j < len(tokens) {
			pos = tokens[j].Pos
		}
		return "", 0, diag.NewPreprocessError(pos, "expected macro name after %s", tokens[i].Kind)
	}
	return tokens[j].Text, j, nil
}

// parseDefine reads a full #define directive starting at tokens[i]
// (the KEYWORD_DEFINE token) and returns the resulting Definition and
// the index of the last token consumed.
func parseDefine(tokens []token.Token, i int) (*macro.Definition, int, error) {
	defPos := tokens[i].Pos
	j := skipLayout(tokens, i+1)
	if j >= len(tokens) || tokens[j].Kind != token.WORD {
		return nil, 0, diag.NewPreprocessError(defPos, "expected macro name after #define")
	}
	name := tokens[j].Text
	j++

	var params []string
	hasParams := false
	if j < len(tokens) && tokens[j].Kind == token.L_ROUND {
		hasParams = true
		j++
		for {
			j = skipLayout(tokens, j)
			if j >= len(tokens) {
				return nil, 0, diag.NewMissingToken(token.R_ROUND, &tokens[i])
			}
			if tokens[j].Kind == token.R_ROUND {
				j++
				break
			}
			if tokens[j].Kind != token.WORD {
				return nil, 0, diag.NewPreprocessError(tokens[j].Pos, "expected parameter name in #define %s(...)", name)
			}
			params = append(params, tokens[j].Text)
			j++
			j = skipLayout(tokens, j)
			if j < len(tokens) && tokens[j].Kind == token.COMMA {
				j++
			}
		}
	}

	j = skipLayout(tokens, j)

	var body []token.Token
	for j < len(tokens) && tokens[j].Kind != token.NEWLINE && tokens[j].Kind != token.EOF {
		if tokens[j].Kind == token.DOUBLE_HASH {
			// Token paste: drop the ## marker and any layout
			// immediately adjacent to it so the surrounding tokens
			// abut in the stored body, realizing the paste without
			// a distinct paste step at expansion time.
			for len(body) > 0 && isLayout(body[len(body)-1].Kind) {
				body = body[:len(body)-1]
			}
			j++
			j = skipLayout(tokens, j)
			continue
		}
		body = append(body, tokens[j])
		j++
	}

	return &macro.Definition{
		Name:      name,
		Params:    params,
		HasParams: hasParams,
		Body:      body,
		Pos:       defPos,
	}, j, nil
}

func isLayout(k token.Kind) bool {
	return k == token.WHITESPACE || k == token.TAB
}

func skipLayout(tokens []token.Token, i int) int {
	for i < len(tokens) && isLayout(tokens[i].Kind) {
		i++
	}
	return i
}

// skipToLineEnd advances past whatever tokens remain on a directive's
// line and returns the index of its terminating NEWLINE (or EOF), so the
// whole directive line — including the newline — is removed from the
// preprocessed stream.
func skipToLineEnd(tokens []token.Token, i int) int {
	for i < len(tokens) && tokens[i].Kind != token.NEWLINE && tokens[i].Kind != token.EOF {
		i++
	}
	return i
}
