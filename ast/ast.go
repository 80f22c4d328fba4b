// Package ast defines the syntax tree produced by the parser: class
// definitions, assignments (scalar and array), array literals, and
// the include statements that survive only when preprocessing was
// disabled for the call.
package ast

import (
	"fmt"
	"strings"

	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

// Kind identifies a Node's concrete type, letting callers switch on
// AST shape without a type assertion chain.
type Kind int

const (
	KindStringLiteral Kind = iota
	KindNumberConstant
	KindIdentifier
	KindArrayDeclaration
	KindArrayLiteral
	KindAssignment
	KindClassDefinition
	KindIncludeStatement
)

func (k Kind) String() string {
	switch k {
	case KindStringLiteral:
		return "StringLiteral"
	case KindNumberConstant:
		return "NumberConstant"
	case KindIdentifier:
		return "Identifier"
	case KindArrayDeclaration:
		return "ArrayDeclaration"
	case KindArrayLiteral:
		return "ArrayLiteral"
	case KindAssignment:
		return "Assignment"
	case KindClassDefinition:
		return "ClassDefinition"
	case KindIncludeStatement:
		return "IncludeStatement"
	default:
		return "Unknown"
	}
}

// Node is implemented by every AST type. String renders the node back
// to config syntax, which is what the emitter's AST mode delegates to
// (spec.md §4.4).
type Node interface {
	Kind() Kind
	Pos() token.Pos
	String() string
}

// StringLiteral is the text between a matching pair of quote tokens.
// Tokens carries the full run including the delimiting quotes, the
// way the original implementation's StringLiteral keeps its source
// tokens for provenance.
type StringLiteral struct {
	Value  string
	Tokens []token.Token
}

func (n *StringLiteral) Kind() Kind      { return KindStringLiteral }
func (n *StringLiteral) Pos() token.Pos  { return posOf(n.Tokens) }
func (n *StringLiteral) String() string  { return fmt.Sprintf("%q", n.Value) }

// NumberConstant is a single NUMBER token value.
type NumberConstant struct {
	Value string
	Token token.Token
}

func (n *NumberConstant) Kind() Kind     { return KindNumberConstant }
func (n *NumberConstant) Pos() token.Pos { return n.Token.Pos }
func (n *NumberConstant) String() string { return n.Value }

// Identifier is a bare WORD used as a class name, key, or parent
// class reference.
type Identifier struct {
	Name  string
	Token token.Token
}

func (n *Identifier) Kind() Kind     { return KindIdentifier }
func (n *Identifier) Pos() token.Pos { return n.Token.Pos }
func (n *Identifier) String() string { return n.Name }

// ArrayDeclaration is the "name[]" on the left of an array
// assignment, optionally with a "+=" accumulate marker.
type ArrayDeclaration struct {
	Name       string
	Accumulate bool
	Token      token.Token
}

func (n *ArrayDeclaration) Kind() Kind     { return KindArrayDeclaration }
func (n *ArrayDeclaration) Pos() token.Pos { return n.Token.Pos }
func (n *ArrayDeclaration) String() string {
	if n.Accumulate {
		return n.Name + "[] +="
	}
	return n.Name + "[]"
}

// ArrayLiteral is a "{...}" value, whose elements are themselves
// StringLiteral, NumberConstant, Identifier, or nested ArrayLiteral nodes.
type ArrayLiteral struct {
	Elements []Node
	Open     token.Token
}

func (n *ArrayLiteral) Kind() Kind     { return KindArrayLiteral }
func (n *ArrayLiteral) Pos() token.Pos { return n.Open.Pos }
func (n *ArrayLiteral) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Assignment binds a scalar or array declaration to a value.
type Assignment struct {
	Target Node // *Identifier or *ArrayDeclaration
	Value  Node
}

func (n *Assignment) Kind() Kind     { return KindAssignment }
func (n *Assignment) Pos() token.Pos { return n.Target.Pos() }
func (n *Assignment) String() string {
	if ad, ok := n.Target.(*ArrayDeclaration); ok && ad.Accumulate {
		return fmt.Sprintf("%s[] += %s;", ad.Name, n.Value.String())
	}
	return fmt.Sprintf("%s = %s;", n.Target.String(), n.Value.String())
}

// ClassDefinition is "class Name[: Parent] { ... };" or the forward
// declaration form "class Name;" with a nil Body.
type ClassDefinition struct {
	Name   string
	Parent string // empty when absent
	Body   []Node // nil for a forward declaration
	Token  token.Token
}

func (n *ClassDefinition) Kind() Kind     { return KindClassDefinition }
func (n *ClassDefinition) Pos() token.Pos { return n.Token.Pos }
func (n *ClassDefinition) String() string {
	var sb strings.Builder
	sb.WriteString("class ")
	sb.WriteString(n.Name)
	if n.Parent != "" {
		sb.WriteString(": ")
		sb.WriteString(n.Parent)
	}
	if n.Body == nil {
		sb.WriteString(";")
		return sb.String()
	}
	sb.WriteString(" {\n")
	for _, stmt := range n.Body {
		sb.WriteString("\t")
		sb.WriteString(stmt.String())
		sb.WriteString("\n")
	}
	sb.WriteString("};")
	return sb.String()
}

// IncludeStatement only appears in a parsed tree when the caller
// disabled preprocessing (WithPreprocessingDisabled); otherwise every
// #include is resolved away before the parser ever runs.
type IncludeStatement struct {
	Path  string
	Token token.Token
}

func (n *IncludeStatement) Kind() Kind     { return KindIncludeStatement }
func (n *IncludeStatement) Pos() token.Pos { return n.Token.Pos }
func (n *IncludeStatement) String() string { return fmt.Sprintf("#include %q", n.Path) }

func posOf(toks []token.Token) token.Pos {
	if len(toks) == 0 {
		return token.Pos{}
	}
	return toks[0].Pos
}
