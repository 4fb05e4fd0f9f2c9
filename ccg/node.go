// Package ccg builds and stores the code context graph: a cross-file,
// cross-entity symbol graph for a multi-language source tree, constructed
// in two passes. Pass 1 extracts per-file declarations in parallel;
// Pass 2 resolves imports, calls, and inheritance across files.
package ccg

import (
	"path"
	"strings"

	"github.com/codecontexthq/contextgraph/ccg/langsupport"
)

// NodeKind identifies the kind of a graph node.
type NodeKind string

const (
	KindDirectory NodeKind = "directory"
	KindFile      NodeKind = "file"
	KindModule    NodeKind = "module"
	KindClass     NodeKind = "class"
	KindFunction  NodeKind = "function"
)

// ParseStatus is a File node's parse outcome.
type ParseStatus string

const (
	ParseOK     ParseStatus = "ok"
	ParseFailed ParseStatus = "parse-error"
)

// Node is one graph node. Nodes are created exactly once, during Pass 1,
// and are read-only thereafter.
type Node struct {
	ID        string
	Kind      NodeKind
	Name      string
	Qualified string      // dotted name within the owning file; empty for directory/file nodes
	Path      string      // owning file path, or the directory's own path
	Variant   string      // file nodes: language variant tag
	Status    ParseStatus // file nodes
	Params    []string    // function nodes: parameter names
	Signature string      // function nodes: rendered name(params)
	Doc       string
	Pos       langsupport.Position
}

// ModuleName derives a file's logical module name from its path stem.
func ModuleName(filePath string) string {
	base := path.Base(filePath)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// PathID is the identity of a Directory or File node.
func PathID(p string) string {
	return p
}

// SymbolID is the identity of a Module, Class, or Function node: the owning
// file path joined with the dotted qualified name. Re-deriving the same ID
// for the same declaration is what makes insertion idempotent.
func SymbolID(filePath, qualified string) string {
	return filePath + "::" + qualified
}

// ModuleID is the identity of the Module owned by a file. It is a pure
// function of the file path, so module keys never collide across files.
func ModuleID(filePath string) string {
	return SymbolID(filePath, ModuleName(filePath))
}
