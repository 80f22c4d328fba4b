package preprocessor

import (
	"strings"

	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/diag"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/fileutil"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/lexer"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

// expandIncludes implements phase B: every #include "path" directive
// is replaced in place by the (comment-stripped, recursively
// included) token stream of the file it names. When the Preprocessor
// was built without a resolver, #include expansion is disabled and
// the directive is left untouched for the parser.
func (p *Preprocessor) expandIncludes(tokens []token.Token, file string) ([]token.Token, error) {
	if p.resolver == nil {
		return tokens, nil
	}

	out := make([]token.Token, 0, len(tokens))
	dir := fileutil.Dir(file)

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if t.Kind != token.KEYWORD_INCLUDE {
			out = append(out, t)
			continue
		}

		path, end, err := parseIncludeOperand(tokens, i)
		if err != nil {
			return nil, err
		}

		resolved, err := p.resolver.Resolve(dir, path)
		if err != nil {
			return nil, diag.NewPreprocessError(t.Pos, "cannot resolve #include %q: %v", path, err)
		}

		if p.visiting[resolved] {
			return nil, diag.NewPreprocessError(t.Pos, "cyclic #include of %s", resolved)
		}

		included, err := p.readAndExpand(resolved)
		if err != nil {
			return nil, err
		}

		out = append(out, included...)
		i = end
	}

	return out, nil
}

// readAndExpand lexes resolved, strips its comments, and recursively
// expands its own #includes, returning its tokens with the trailing
// EOF dropped (the token belongs to the outer stream, not this
// fragment).
func (p *Preprocessor) readAndExpand(resolved string) ([]token.Token, error) {
	p.visiting[resolved] = true
	defer delete(p.visiting, resolved)

	raw, err := p.resolver.ReadFile(resolved)
	if err != nil {
		return nil, diag.NewPreprocessError(token.Pos{File: resolved}, "reading included file: %v", err)
	}
	src, err := fileutil.Decode(raw)
	if err != nil {
		return nil, diag.NewPreprocessError(token.Pos{File: resolved}, "decoding included file: %v", err)
	}

	toks, err := lexer.Tokenize(src, resolved)
	if err != nil {
		return nil, err
	}

	toks, err = removeComments(toks)
	if err != nil {
		return nil, err
	}

	toks, err = p.expandIncludes(toks, resolved)
	if err != nil {
		return nil, err
	}

	if n := len(toks); n > 0 && toks[n-1].Kind == token.EOF {
		toks = toks[:n-1]
	}
	return toks, nil
}

// parseIncludeOperand reads the path following the KEYWORD_INCLUDE
// token at tokens[start], skipping the whitespace the lexer preserves
// between the directive and the opening delimiter. The operand may be
// either "path" (DOUBLE_QUOTE-delimited) or <path> (LESS/GREATER
// delimited). It returns the raw path text and the index of the final
// token consumed (the closing delimiter), so the caller can resume
// scanning right after it.
func parseIncludeOperand(tokens []token.Token, start int) (string, int, error) {
	i := start + 1
	for i < len(tokens) && (tokens[i].Kind == token.WHITESPACE || tokens[i].Kind == token.TAB) {
		i++
	}

	var closing token.Kind
	switch {
	case i < len(tokens) && tokens[i].Kind == token.DOUBLE_QUOTE:
		closing = token.DOUBLE_QUOTE
	case i < len(tokens) && tokens[i].Kind == token.LESS:
		closing = token.GREATER
	default:
		pos := tokens[start].Pos
		if i < len(tokens) {
			pos = tokens[i].Pos
		}
		return "", 0, diag.NewPreprocessError(pos, "#include expects a quoted or angle-bracketed path")
	}

	var sb strings.Builder
	i++
	for i < len(tokens) && tokens[i].Kind != closing {
		if tokens[i].Kind == token.EOF {
			return "", 0, diag.NewMissingToken(closing, &tokens[start])
		}
		sb.WriteString(tokens[i].Literal())
		i++
	}
	if i >= len(tokens) || tokens[i].Kind != closing {
		return "", 0, diag.NewMissingToken(closing, &tokens[start])
	}

	return sb.String(), i, nil
}
