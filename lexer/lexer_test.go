package lexer

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

func TestTokenize_ClassDefinition(t *testing.T) {
	toks, err := Tokenize(`class Foo: Bar { x = 1; };`, StringInput)
	require.NoError(t, err)

	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}

	assert.Contains(t, kinds, token.KEYWORD_CLASS)
	assert.Contains(t, kinds, token.COLON)
	assert.Contains(t, kinds, token.L_CURLY)
	assert.Contains(t, kinds, token.R_CURLY)
	assert.Equal(t, token.EOF, kinds[len(kinds)-1])
}

func TestTokenize_NegativeNumberIsSingleToken(t *testing.T) {
	toks, err := Tokenize(`-5`, StringInput)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(toks), 1)
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, "-5", toks[0].Text)
}

func TestTokenize_MinusWithoutDigitIsOperator(t *testing.T) {
	toks, err := Tokenize(`- x`, StringInput)
	require.NoError(t, err)
	assert.Equal(t, token.MINUS, toks[0].Kind)
}

func TestTokenize_DirectiveKeywords(t *testing.T) {
	toks, err := Tokenize("#define FOO 1\n#ifdef FOO\n#else\n#endif\n#undef FOO\n#include \"a.hpp\"\n", StringInput)
	require.NoError(t, err)

	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Contains(t, kinds, token.KEYWORD_DEFINE)
	assert.Contains(t, kinds, token.KEYWORD_IFDEF)
	assert.Contains(t, kinds, token.KEYWORD_ELSE)
	assert.Contains(t, kinds, token.KEYWORD_ENDIF)
	assert.Contains(t, kinds, token.KEYWORD_UNDEF)
	assert.Contains(t, kinds, token.KEYWORD_INCLUDE)
}

func TestTokenize_HashNotFollowedByDirectiveIsHash(t *testing.T) {
	toks, err := Tokenize(`#x`, StringInput)
	require.NoError(t, err)
	assert.Equal(t, token.HASH, toks[0].Kind)
}

func TestTokenize_DoubleHash(t *testing.T) {
	toks, err := Tokenize(`##`, StringInput)
	require.NoError(t, err)
	assert.Equal(t, token.DOUBLE_HASH, toks[0].Kind)
}

func TestTokenize_StandalonePunctuationKinds(t *testing.T) {
	toks, err := Tokenize(`_.$&%?!`, StringInput)
	require.NoError(t, err)

	want := []token.Kind{
		token.UNDERSCORE, token.DOT, token.DOLLAR, token.AND,
		token.PERCENT, token.QUESTION, token.EXCLAMATION, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind)
	}
}

func TestTokenize_UnderscoreBetweenPasteMarkersInMacroBody(t *testing.T) {
	toks, err := Tokenize(`a##_##b`, StringInput)
	require.NoError(t, err)

	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.WORD, token.DOUBLE_HASH, token.UNDERSCORE, token.DOUBLE_HASH, token.WORD, token.EOF,
	}, kinds)
}

func TestTokenize_UnknownCharacterErrors(t *testing.T) {
	_, err := Tokenize("@", StringInput)
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, '@', lexErr.Char)
}

// Line/column bookkeeping: the character right after a newline starts
// a fresh line at column 1, not a continuation of the previous line.
func TestTokenize_LineAdvancesAfterNewline(t *testing.T) {
	toks, err := Tokenize("a\nb", StringInput)
	require.NoError(t, err)
	require.Len(t, toks, 4) // WORD(a) NEWLINE WORD(b) EOF

	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 1, toks[0].Pos.Column)
	assert.Equal(t, 1, toks[1].Pos.Line) // the newline itself ends line 1
	assert.Equal(t, 2, toks[2].Pos.Line)
	assert.Equal(t, 1, toks[2].Pos.Column)
}

// Property: tokenizing never panics and every non-WORD/NUMBER token's
// Literal() equals its canonical lexeme, over arbitrary ASCII input
// drawn from the grammar's punctuation alphabet.
func TestProperty_TokenizeNeverPanicsOnGrammarAlphabet(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	alphabet := []rune("{}()[];:,=+-*/\\'\"<>#\n\t abc123_")

	properties.Property("tokenize completes and every token satisfies the payload invariant", prop.ForAll(
		func(indices []int) bool {
			runes := make([]rune, len(indices))
			for i, idx := range indices {
				runes[i] = alphabet[idx%len(alphabet)]
			}
			src := string(runes)

			toks, err := Tokenize(src, StringInput)
			if err != nil {
				return true // an unknown-character error is an acceptable outcome
			}
			for _, tk := range toks {
				if !tk.Kind.HasPayload() && tk.Kind != token.EOF {
					if tk.Literal() != tk.Text {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(alphabet)-1)),
	))

	properties.TestingRun(t)
}
