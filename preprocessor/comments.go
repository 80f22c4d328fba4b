package preprocessor

import (
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/diag"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

// removeComments implements phase A. A line comment runs from // to
// (but not including) the next NEWLINE, which is kept so later phases
// still see one token per source line break. A block comment runs
// from /* to the matching */ inclusive, newlines and all.
func removeComments(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]

		switch t.Kind {
		case token.COMMENT:
			for i < len(tokens) && tokens[i].Kind != token.NEWLINE && tokens[i].Kind != token.EOF {
				i++
			}
			i-- // the outer loop's i++ lands on the NEWLINE/EOF itself

		case token.MCOMMENT_START:
			opener := t
			closed := false
			for i++; i < len(tokens); i++ {
				if tokens[i].Kind == token.MCOMMENT_END {
					closed = true
					break
				}
				if tokens[i].Kind == token.EOF {
					break
				}
			}
			if !closed {
				return nil, diag.NewPreprocessError(opener.Pos, "unterminated block comment")
			}
			// i now sits on MCOMMENT_END; outer loop's i++ moves past it.

		default:
			out = append(out, t)
		}
	}

	return out, nil
}
