// Package parser builds an ast.Node tree from a preprocessed token
// stream. The grammar has no operator precedence to speak of, so
// unlike a typical expression parser this is a small stack-less
// recursive-descent cursor over the token slice, mirroring the
// original implementation's TokenProcessor/Parser split: a handful of
// cursor primitives (cur/advance/expect) plus one parse function per
// grammar rule.
package parser

import (
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/ast"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/diag"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

// Parser walks a token slice producing ast.Node values.
type Parser struct {
	tokens []token.Token
	pos    int
	sink   *diag.Sink
}

// New builds a Parser over tokens, which should already be fully
// preprocessed (or, with preprocessing disabled, straight lexer
// output). The parser records no warnings in sink: a token it does not
// recognize is returned as an UnexpectedTokenError, and a leftover
// #include becomes an ast.IncludeStatement.
func New(tokens []token.Token, sink *diag.Sink) *Parser {
	return &Parser{tokens: tokens, sink: sink}
}

// Parse consumes the entire token stream and returns the top-level
// statement list.
func (p *Parser) Parse() ([]ast.Node, error) {
	var stmts []ast.Node
	p.skipLayout()
	for !p.atEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipLayout()
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	switch p.cur().Kind {
	case token.KEYWORD_CLASS:
		return p.parseClassDefinition()
	case token.KEYWORD_INCLUDE:
		return p.parseIncludeStatement()
	case token.WORD:
		return p.parseAssignment()
	default:
		return nil, diag.NewUnexpectedToken(p.cur(), token.KEYWORD_CLASS, token.WORD)
	}
}

// parseClassDefinition handles both "class Name;" forward
// declarations and "class Name[: Parent] { ... };" full definitions.
func (p *Parser) parseClassDefinition() (ast.Node, error) {
	tok := p.cur()
	p.advance() // KEYWORD_CLASS
	p.skipLayout()

	name, err := p.expect(token.WORD)
	if err != nil {
		return nil, err
	}
	p.skipLayout()

	var parent string
	if p.cur().Kind == token.COLON {
		p.advance()
		p.skipLayout()
		parentTok, err := p.expect(token.WORD)
		if err != nil {
			return nil, err
		}
		parent = parentTok.Text
		p.skipLayout()
	}

	if p.cur().Kind == token.SEMICOLON {
		p.advance()
		return &ast.ClassDefinition{Name: name.Text, Parent: parent, Body: nil, Token: tok}, nil
	}

	if _, err := p.expect(token.L_CURLY); err != nil {
		return nil, err
	}
	p.skipLayout()

	var body []ast.Node
	for p.cur().Kind != token.R_CURLY {
		if p.atEOF() {
			return nil, diag.NewMissingToken(token.R_CURLY, &tok)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		p.skipLayout()
	}
	p.advance() // R_CURLY
	p.skipLayout()
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.ClassDefinition{Name: name.Text, Parent: parent, Body: body, Token: tok}, nil
}

// parseIncludeStatement only runs when preprocessing was disabled for
// the call, since #include is otherwise resolved away in phase B.
func (p *Parser) parseIncludeStatement() (ast.Node, error) {
	tok := p.cur()
	p.advance() // KEYWORD_INCLUDE
	p.skipLayout()

	open, err := p.expect(token.DOUBLE_QUOTE)
	if err != nil {
		return nil, err
	}
	var path string
	for p.cur().Kind != token.DOUBLE_QUOTE {
		if p.atEOF() {
			return nil, diag.NewMissingToken(token.DOUBLE_QUOTE, &open)
		}
		path += p.cur().Literal()
		p.advance()
	}
	p.advance() // closing DOUBLE_QUOTE

	return &ast.IncludeStatement{Path: path, Token: tok}, nil
}

// parseAssignment handles "name = value;", "name[] = {...};" and
// "name[] += {...};".
func (p *Parser) parseAssignment() (ast.Node, error) {
	nameTok := p.cur()
	p.advance()
	p.skipLayout()

	if p.cur().Kind == token.L_SQUARE {
		return p.parseArrayAssignment(nameTok)
	}

	if _, err := p.expect(token.EQUALS); err != nil {
		return nil, err
	}
	p.skipLayout()

	value, err := p.parseScalarValue()
	if err != nil {
		return nil, err
	}
	p.skipLayout()
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	target := &ast.Identifier{Name: nameTok.Text, Token: nameTok}
	return &ast.Assignment{Target: target, Value: value}, nil
}

func (p *Parser) parseArrayAssignment(nameTok token.Token) (ast.Node, error) {
	p.advance() // L_SQUARE
	if _, err := p.expect(token.R_SQUARE); err != nil {
		return nil, err
	}
	p.skipLayout()

	accumulate := false
	if p.cur().Kind == token.PLUS {
		p.advance()
		accumulate = true
	}
	if _, err := p.expect(token.EQUALS); err != nil {
		return nil, err
	}
	p.skipLayout()

	value, err := p.parseArrayLiteral()
	if err != nil {
		return nil, err
	}
	p.skipLayout()
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	target := &ast.ArrayDeclaration{Name: nameTok.Text, Accumulate: accumulate, Token: nameTok}
	return &ast.Assignment{Target: target, Value: value}, nil
}

// parseScalarValue parses a string literal, number, or bare
// identifier value on the right of "name =".
func (p *Parser) parseScalarValue() (ast.Node, error) {
	switch p.cur().Kind {
	case token.QUOTE, token.DOUBLE_QUOTE:
		return p.parseStringLiteral()
	case token.NUMBER:
		return p.parseNumberConstant()
	case token.WORD:
		tok := p.cur()
		p.advance()
		return &ast.Identifier{Name: tok.Text, Token: tok}, nil
	default:
		return nil, diag.NewUnexpectedToken(p.cur(), token.QUOTE, token.DOUBLE_QUOTE, token.NUMBER, token.WORD)
	}
}

func (p *Parser) parseStringLiteral() (ast.Node, error) {
	quote := p.cur().Kind
	open := p.cur()
	var toks []token.Token
	toks = append(toks, open)
	p.advance()

	var value string
	for p.cur().Kind != quote {
		if p.atEOF() {
			return nil, diag.NewMissingToken(quote, &open)
		}
		toks = append(toks, p.cur())
		value += p.cur().Literal()
		p.advance()
	}
	toks = append(toks, p.cur())
	p.advance() // closing quote

	return &ast.StringLiteral{Value: value, Tokens: toks}, nil
}

func (p *Parser) parseNumberConstant() (ast.Node, error) {
	tok := p.cur()
	p.advance()
	return &ast.NumberConstant{Value: tok.Text, Token: tok}, nil
}

// parseArrayLiteral parses a "{...}" value whose elements may
// themselves be strings, numbers, identifiers, or nested array literals.
func (p *Parser) parseArrayLiteral() (ast.Node, error) {
	open := p.cur()
	if _, err := p.expect(token.L_CURLY); err != nil {
		return nil, err
	}
	p.skipLayout()

	var elems []ast.Node
	for p.cur().Kind != token.R_CURLY {
		if p.atEOF() {
			return nil, diag.NewMissingToken(token.R_CURLY, &open)
		}
		var elem ast.Node
		var err error
		if p.cur().Kind == token.L_CURLY {
			elem, err = p.parseArrayLiteral()
		} else {
			elem, err = p.parseScalarValue()
		}
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		p.skipLayout()
		if p.cur().Kind == token.COMMA {
			p.advance()
			p.skipLayout()
		}
	}
	p.advance() // R_CURLY

	return &ast.ArrayLiteral{Elements: elems, Open: open}, nil
}

// --- cursor primitives ---

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) skipLayout() {
	for p.cur().Kind == token.WHITESPACE || p.cur().Kind == token.TAB || p.cur().Kind == token.NEWLINE {
		p.advance()
	}
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.cur().Kind != kind {
		return token.Token{}, diag.NewUnexpectedToken(p.cur(), kind)
	}
	tok := p.cur()
	p.advance()
	return tok, nil
}
