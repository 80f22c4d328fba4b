// Package armaclass is the top-level entry point for this module: it
// wires the lexer, preprocessor and parser into ParseFile/ParseString
// calls configured through functional Options, the way the teacher
// repo's compiler package exposes Compile/CompileFile/CompileWithOptions.
package armaclass

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/ast"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/diag"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/fileutil"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/logging"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/lexer"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/macro"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/parser"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/preprocessor"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

// config collects what the Options build up before a parse call.
type config struct {
	preprocessingDisabled bool
	includeRoot           string
	fs                    afero.Fs
	sink                  *diag.Sink
	logger                *slog.Logger
	table                 *macro.Table
}

// Option configures a ParseFile/ParseString call.
type Option func(*config)

// WithPreprocessingDisabled skips all four preprocessor phases;
// #include, #define and friends reach the parser as literal tokens,
// where #include is still recognized structurally (ast.IncludeStatement)
// but everything else is rejected as an unexpected token.
func WithPreprocessingDisabled() Option {
	return func(c *config) { c.preprocessingDisabled = true }
}

// WithIncludeRoot sets the directory a backslash-prefixed absolute
// #include resolves against when it isn't found under the including
// file's own directory tree (the "P:" drive fallback in spec.md §4.2).
func WithIncludeRoot(root string) Option {
	return func(c *config) { c.includeRoot = root }
}

// WithFileSystem overrides the afero.Fs used to resolve #include and,
// for ParseFile, to read the entry file itself. Defaults to
// afero.NewOsFs(); tests typically pass afero.NewMemMapFs().
func WithFileSystem(fs afero.Fs) Option {
	return func(c *config) { c.fs = fs }
}

// WithSink directs warnings (macro redefinitions, #undef of an
// unknown macro) to an existing sink
// instead of a private one, so a caller driving many parses can
// collect diagnostics across all of them.
func WithSink(sink *diag.Sink) Option {
	return func(c *config) { c.sink = sink }
}

// WithLogger routes the diagnostic sink's structured log output to
// logger instead of discarding it.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMacroTable seeds preprocessing with an existing macro table,
// letting a caller predefine macros (the equivalent of a compiler's
// -D flag) or recover the table built by a previous call.
func WithMacroTable(table *macro.Table) Option {
	return func(c *config) { c.table = table }
}

// Result is the outcome of a successful parse.
type Result struct {
	AST      []ast.Node
	Tokens   []token.Token // post-preprocessing token stream
	Table    *macro.Table  // final macro state, useful for chained calls
	Warnings []diag.Warning
}

func newConfig(opts []Option) *config {
	c := &config{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(c)
	}
	if c.sink == nil {
		logger := c.logger
		if logger == nil {
			logger = logging.Discard()
		}
		c.sink = diag.NewSink(logger)
	}
	if c.table == nil {
		c.table = macro.NewTable()
	}
	return c
}

// ParseString parses src as an in-memory source labeled
// lexer.StringInput. A string has no directory of its own, so its
// #include operands, relative and backslash-absolute alike, resolve
// from the root directory "/" of the configured filesystem; an
// absolute operand not found there falls back to WithIncludeRoot.
func ParseString(src string, opts ...Option) (*Result, error) {
	c := newConfig(opts)
	return run(c, src, lexer.StringInput)
}

// ParseFile reads path through the configured filesystem (or the
// real OS filesystem by default), decodes it, and parses it.
// Relative #include directives resolve against path's directory.
func ParseFile(path string, opts ...Option) (*Result, error) {
	c := newConfig(opts)
	raw, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, fmt.Errorf("armaclass: reading %s: %w", path, err)
	}
	src, err := fileutil.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("armaclass: decoding %s: %w", path, err)
	}
	return run(c, src, path)
}

func run(c *config, src, file string) (*Result, error) {
	tokens, err := lexer.Tokenize(src, file)
	if err != nil {
		return nil, err
	}

	if !c.preprocessingDisabled {
		resolver := fileutil.NewResolver(c.fs, c.includeRoot)
		pp := preprocessor.New(resolver, c.sink)
		tokens, err = pp.Preprocess(tokens, file, c.table)
		if err != nil {
			return nil, err
		}
	}

	tree, err := parser.New(tokens, c.sink).Parse()
	if err != nil {
		return nil, err
	}

	return &Result{
		AST:      tree,
		Tokens:   tokens,
		Table:    c.table,
		Warnings: c.sink.Warnings(),
	}, nil
}
