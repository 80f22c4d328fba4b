// Package macro holds the object-like and function-like macro table
// shared across an include chain during preprocessing (spec.md §4.2,
// phase D). A Table travels by pointer from the top-level file into
// every #include so a #define earlier in the chain is visible to
// files included later, matching the original implementation's
// single shared define dictionary.
package macro

import "github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"

// Definition is one #define: HasParams distinguishes "#define M" (an
// object-like macro, expanded with no argument list at all) from
// "#define M()" (a function-like macro with zero parameters, which
// still requires a call-site "()" to expand) — the spec's Open
// Question on this point is resolved in favor of carrying the
// distinction explicitly rather than inferring it from len(Params).
type Definition struct {
	Name      string
	Params    []string
	HasParams bool
	Body      []token.Token
	Pos       token.Pos
}

// Table is the set of macros currently in scope. The zero value is
// ready to use.
type Table struct {
	defs map[string]*Definition
}

// NewTable builds an empty macro table.
func NewTable() *Table {
	return &Table{defs: make(map[string]*Definition)}
}

// Define installs d, returning the previous definition of the same
// name if one existed (the caller uses this to decide whether to
// raise a MacroRedefined warning).
func (t *Table) Define(d *Definition) *Definition {
	if t.defs == nil {
		t.defs = make(map[string]*Definition)
	}
	prev := t.defs[d.Name]
	t.defs[d.Name] = d
	return prev
}

// Undef removes a macro, reporting whether it was defined.
func (t *Table) Undef(name string) bool {
	_, ok := t.defs[name]
	delete(t.defs, name)
	return ok
}

// Lookup returns the definition for name, if any.
func (t *Table) Lookup(name string) (*Definition, bool) {
	d, ok := t.defs[name]
	return d, ok
}

// Has reports whether name is currently defined.
func (t *Table) Has(name string) bool {
	_, ok := t.defs[name]
	return ok
}

// WithoutSelf returns a lookup function that behaves like t.Lookup
// except that name itself is hidden, so a lookup made while expanding
// a self-referential definition like "#define FOO FOO" does not find
// FOO again. The preprocessor does not call it: its own expansion
// guards against cycles with a set of the macro names being expanded.
func (t *Table) WithoutSelf(name string) func(string) (*Definition, bool) {
	return func(lookup string) (*Definition, bool) {
		if lookup == name {
			return nil, false
		}
		return t.Lookup(lookup)
	}
}
