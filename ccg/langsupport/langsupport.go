package langsupport

import (
	"fmt"
	"strings"
)

// Position is a 1-indexed line/column location in a source file.
type Position struct {
	Line   int
	Column int
}

// ParseError reports a syntax error in a single source file. It is
// file-local: the file contributes no declarations, but sibling files
// are unaffected.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

// DeclKind distinguishes class and function declarations.
type DeclKind int

const (
	DeclClass DeclKind = iota
	DeclFunction
)

// ImportDecl is one import statement normalized across languages.
// Target preserves the path exactly as written; Up and Segments carry
// the already-split form resolvers walk against the repository tree.
type ImportDecl struct {
	Target   string   // import path as written in source
	Segments []string // path segments after any ancestor markers
	Up       int      // directory levels to walk up (relative imports only)
	Relative bool     // explicit ancestor/current-dir markers present
	Alias    string   // local binding name; empty means the target's own name
	Symbol   string   // single imported symbol, empty for whole-module imports
	Wildcard bool     // binds every top-level symbol of the target
	Pos      Position
}

// BindingName returns the name the import introduces into the file's scope.
// A side-effect import binds nothing: its target is a path, not a name.
func (d ImportDecl) BindingName() string {
	if d.Alias != "" {
		return d.Alias
	}
	if d.Symbol != "" {
		return d.Symbol
	}
	if d.Relative || strings.Contains(d.Target, "/") {
		return ""
	}
	return d.Target
}

// CallSite is one call expression found in a function body, kept in its
// raw textual form until cross-file resolution.
type CallSite struct {
	Callee string // callee expression as written, e.g. "g" or "utils.slugify"
	Pos    Position
}

// BaseRef is one declared base class, unresolved.
type BaseRef struct {
	Name string
	Pos  Position
}

// Declaration is one class or function declaration with its nested
// declarations. Every language variant emits this same shape.
type Declaration struct {
	Kind     DeclKind
	Name     string
	Params   []string   // parameter names, no types
	Doc      string     // leading documentation string, when the language has one
	Bases    []BaseRef  // classes only
	Calls    []CallSite // functions only
	Children []Declaration
	Pos      Position
}

// FileAST is the normalized parse result for one file: its imports and
// its top-level declarations. It carries only local information; nothing
// in it references another file.
type FileAST struct {
	Imports      []ImportDecl
	Declarations []Declaration
}

// Variant is pluggable language support. Implementations parse raw file
// content into the normalized FileAST shape; downstream extraction and
// resolution never see language-specific syntax.
type Variant interface {
	Name() string
	Extensions() []string

	// EntryFileNames lists file names that act as a directory's package
	// entry point when an import resolves to a directory (e.g. __init__.py).
	EntryFileNames() []string

	Maturity() MaturityLevel

	Parse(source []byte) (*FileAST, error)
}
