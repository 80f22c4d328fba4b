// Package diag holds the error and warning vocabulary shared by the
// lexer, preprocessor and parser, plus the per-call diagnostic sink
// that collects non-fatal warnings.
package diag

import (
	"fmt"
	"strings"

	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

// PreprocessError covers unresolvable includes, malformed directives,
// unexpected EOF during skip/process, unterminated block comments, and
// phase-ordering violations.
type PreprocessError struct {
	Message string
	Pos     token.Pos
}

func (e *PreprocessError) Error() string {
	if e.Pos.File == "" {
		return fmt.Sprintf("preprocess error: %s", e.Message)
	}
	return fmt.Sprintf("preprocess error at %s: %s", e.Pos, e.Message)
}

func NewPreprocessError(pos token.Pos, format string, args ...any) *PreprocessError {
	return &PreprocessError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// UnexpectedTokenError is raised by the parser when the token at the
// cursor isn't one of the expected kinds.
type UnexpectedTokenError struct {
	Expected []token.Kind
	Actual   token.Token
}

func (e *UnexpectedTokenError) Error() string {
	want := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		want[i] = k.String()
	}
	return fmt.Sprintf("expected token %s but got %s at %s",
		strings.Join(want, " or "), e.Actual.Kind, e.Actual.Pos)
}

func NewUnexpectedToken(actual token.Token, expected ...token.Kind) *UnexpectedTokenError {
	return &UnexpectedTokenError{Expected: expected, Actual: actual}
}

// UnexpectedStatementError describes an AST shape that doesn't match
// what a grammar rule requires. The recursive-descent parser in this
// module keeps no statement stack and does not return it.
type UnexpectedStatementError struct {
	Message string
	Pos     token.Pos
}

func (e *UnexpectedStatementError) Error() string {
	return fmt.Sprintf("unexpected statement at %s: %s", e.Pos, e.Message)
}

func NewUnexpectedStatement(pos token.Pos, format string, args ...any) *UnexpectedStatementError {
	return &UnexpectedStatementError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// MissingTokenError is raised when EOF is reached while searching for
// a closing delimiter. Opener carries the token that opened the
// construct, when known, so the message can point back to it the way
// the original implementation's MissingTokenError(target, source) does.
type MissingTokenError struct {
	Target token.Kind
	Opener *token.Token
}

func (e *MissingTokenError) Error() string {
	if e.Opener != nil {
		return fmt.Sprintf("reached end of file while looking for token %s, closing %s at %s",
			e.Target, e.Opener.Kind, e.Opener.Pos)
	}
	return fmt.Sprintf("reached end of file while looking for token %s", e.Target)
}

func NewMissingToken(target token.Kind, opener *token.Token) *MissingTokenError {
	return &MissingTokenError{Target: target, Opener: opener}
}

// InternalError marks a phase-ordering violation: a token kind that a
// later phase should never see because an earlier phase is contracted
// to have removed it. No stage of the pipeline returns it: the parser
// reports a leftover comment token as an UnexpectedTokenError and
// parses a leftover KEYWORD_INCLUDE into an ast.IncludeStatement.
type InternalError struct {
	Message string
	Pos     token.Pos
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error at %s: %s", e.Pos, e.Message)
}

func NewInternalError(pos token.Pos, format string, args ...any) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// WarningKind classifies a non-fatal diagnostic.
type WarningKind int

const (
	MacroRedefined WarningKind = iota
	UndefUnknownMacro
	UnknownParserToken
)

func (k WarningKind) String() string {
	switch k {
	case MacroRedefined:
		return "macro-redefined"
	case UndefUnknownMacro:
		return "undef-unknown-macro"
	case UnknownParserToken:
		return "unknown-parser-token"
	default:
		return "warning"
	}
}

// Warning is a non-fatal diagnostic emitted during preprocessing or parsing.
type Warning struct {
	Kind    WarningKind
	Message string
	Pos     token.Pos
}

func (w Warning) String() string {
	return fmt.Sprintf("WARNING [%s] %s at %s", w.Kind, w.Message, w.Pos)
}
