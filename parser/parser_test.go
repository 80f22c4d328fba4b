package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/ast"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/diag"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/lexer"
)

func parse(t *testing.T, src string) []ast.Node {
	t.Helper()
	toks, err := lexer.Tokenize(src, lexer.StringInput)
	require.NoError(t, err)
	nodes, err := New(toks, diag.NewSink(nil)).Parse()
	require.NoError(t, err)
	return nodes
}

func TestParse_ForwardDeclaration(t *testing.T) {
	nodes := parse(t, "class Foo;")
	require.Len(t, nodes, 1)
	cd := nodes[0].(*ast.ClassDefinition)
	assert.Equal(t, "Foo", cd.Name)
	assert.Nil(t, cd.Body)
}

func TestParse_ClassWithParentAndBody(t *testing.T) {
	nodes := parse(t, `class Foo: Bar { scalar = 1; name = "hi"; arr[] = {1, 2, "x"}; };`)
	require.Len(t, nodes, 1)
	cd := nodes[0].(*ast.ClassDefinition)
	assert.Equal(t, "Foo", cd.Name)
	assert.Equal(t, "Bar", cd.Parent)
	require.Len(t, cd.Body, 3)

	a0 := cd.Body[0].(*ast.Assignment)
	assert.Equal(t, "scalar", a0.Target.(*ast.Identifier).Name)
	assert.Equal(t, "1", a0.Value.(*ast.NumberConstant).Value)

	a1 := cd.Body[1].(*ast.Assignment)
	assert.Equal(t, "hi", a1.Value.(*ast.StringLiteral).Value)

	a2 := cd.Body[2].(*ast.Assignment)
	arrDecl := a2.Target.(*ast.ArrayDeclaration)
	assert.Equal(t, "arr", arrDecl.Name)
	assert.False(t, arrDecl.Accumulate)
	lit := a2.Value.(*ast.ArrayLiteral)
	require.Len(t, lit.Elements, 3)
}

func TestParse_ArrayAccumulate(t *testing.T) {
	nodes := parse(t, `arr[] += {3, 4};`)
	require.Len(t, nodes, 1)
	a := nodes[0].(*ast.Assignment)
	assert.True(t, a.Target.(*ast.ArrayDeclaration).Accumulate)
}

func TestParse_NestedArrayLiteral(t *testing.T) {
	nodes := parse(t, `arr[] = {{1, 2}, {3, 4}};`)
	a := nodes[0].(*ast.Assignment)
	lit := a.Value.(*ast.ArrayLiteral)
	require.Len(t, lit.Elements, 2)
	_, ok := lit.Elements[0].(*ast.ArrayLiteral)
	assert.True(t, ok)
}

func TestParse_NegativeNumber(t *testing.T) {
	nodes := parse(t, `x = -5;`)
	a := nodes[0].(*ast.Assignment)
	assert.Equal(t, "-5", a.Value.(*ast.NumberConstant).Value)
}

func TestParse_MissingClosingBraceErrors(t *testing.T) {
	toks, err := lexer.Tokenize(`class Foo { x = 1;`, lexer.StringInput)
	require.NoError(t, err)
	_, err = New(toks, diag.NewSink(nil)).Parse()
	require.Error(t, err)
	var missing *diag.MissingTokenError
	require.ErrorAs(t, err, &missing)
}

func TestParse_UnexpectedTokenErrors(t *testing.T) {
	toks, err := lexer.Tokenize(`;`, lexer.StringInput)
	require.NoError(t, err)
	_, err = New(toks, diag.NewSink(nil)).Parse()
	require.Error(t, err)
	var unexpected *diag.UnexpectedTokenError
	require.ErrorAs(t, err, &unexpected)
}

func TestParse_IncludeStatementWhenPreprocessingDisabled(t *testing.T) {
	nodes := parse(t, `#include "shared.hpp"`)
	require.Len(t, nodes, 1)
	inc := nodes[0].(*ast.IncludeStatement)
	assert.Equal(t, "shared.hpp", inc.Path)
}
