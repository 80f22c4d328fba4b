package armaclass

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/ast"
)

func TestParseString_SimpleClass(t *testing.T) {
	res, err := ParseString(`class Foo { x = 1; };`)
	require.NoError(t, err)
	require.Len(t, res.AST, 1)
	cd := res.AST[0].(*ast.ClassDefinition)
	assert.Equal(t, "Foo", cd.Name)
}

func TestParseFile_ExpandsIncludesAgainstFilesystem(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/addon/common.hpp", []byte("#define VERSION 7\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/addon/config.hpp",
		[]byte("#include \"common.hpp\"\nclass Foo { version = VERSION; };\n"), 0o644))

	res, err := ParseFile("/addon/config.hpp", WithFileSystem(fs))
	require.NoError(t, err)
	require.Len(t, res.AST, 1)

	cd := res.AST[0].(*ast.ClassDefinition)
	assign := cd.Body[0].(*ast.Assignment)
	assert.Equal(t, "7", assign.Value.(*ast.NumberConstant).Value)
}

func TestParseString_PreprocessingDisabledKeepsIncludeStatement(t *testing.T) {
	res, err := ParseString(`#include "shared.hpp"`, WithPreprocessingDisabled())
	require.NoError(t, err)
	require.Len(t, res.AST, 1)
	_, ok := res.AST[0].(*ast.IncludeStatement)
	assert.True(t, ok)
}

func TestParseString_WarningsSurfaceThroughResult(t *testing.T) {
	res, err := ParseString("#undef NEVER_DEFINED\n")
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
}

func TestParseFile_IncludeRootFallback(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/shared/defs.hpp", []byte("#define SHARED_VALUE 3\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/addon/config.hpp",
		[]byte("#include \"\\shared\\defs.hpp\"\nclass Foo { v = SHARED_VALUE; };\n"), 0o644))

	res, err := ParseFile("/addon/config.hpp", WithFileSystem(fs), WithIncludeRoot("/p"))
	require.NoError(t, err)
	cd := res.AST[0].(*ast.ClassDefinition)
	assign := cd.Body[0].(*ast.Assignment)
	assert.Equal(t, "3", assign.Value.(*ast.NumberConstant).Value)
}
