package ccg

import (
	"fmt"
	"strings"

	"github.com/codecontexthq/contextgraph/ccg/langsupport"
)

// pendingFile carries one file's raw references across the barrier into
// Pass 2, then is discarded. It is the transient form of every unresolved
// import, call-site, and base-class mention found in the file.
type pendingFile struct {
	path       string
	moduleID   string
	moduleName string
	variant    langsupport.Variant
	imports    []langsupport.ImportDecl
	calls      []pendingCall
	bases      []pendingBase
}

// pendingCall is a raw call-site with its enclosing scope. classID is
// non-empty when the enclosing function is a method.
type pendingCall struct {
	fnID    string
	classID string
	site    langsupport.CallSite
}

type pendingBase struct {
	classID string
	ref     langsupport.BaseRef
}

// extraction is the output of Pass 1 for one file: structural nodes,
// defines edges, raw references, and file-local diagnostics.
type extraction struct {
	nodes   []Node
	edges   []Edge
	pending pendingFile
	diags   []Diagnostic
}

// extractFile turns one file's normalized AST into structural nodes and
// raw references. It is a deterministic, pure function of its input with
// no cross-file knowledge.
func extractFile(filePath string, variant langsupport.Variant, ast *langsupport.FileAST) extraction {
	moduleName := ModuleName(filePath)
	moduleID := ModuleID(filePath)

	ex := extraction{
		pending: pendingFile{
			path:       filePath,
			moduleID:   moduleID,
			moduleName: moduleName,
			variant:    variant,
			imports:    ast.Imports,
		},
	}

	ex.nodes = append(ex.nodes, Node{
		ID:        moduleID,
		Kind:      KindModule,
		Name:      moduleName,
		Qualified: moduleName,
		Path:      filePath,
	})

	seen := map[string]bool{moduleName: true}
	for _, decl := range ast.Declarations {
		ex.extractDecl(filePath, moduleID, moduleName, "", decl, seen)
	}

	return ex
}

// extractDecl registers one declaration and recurses into its children.
// enclosingClassID is non-empty when the declaration is a class member.
func (ex *extraction) extractDecl(filePath, parentID, parentQualified, enclosingClassID string, decl langsupport.Declaration, seen map[string]bool) {
	qualified := parentQualified + "." + decl.Name

	if seen[qualified] {
		// First declaration wins; the duplicate contributes nothing.
		ex.diags = append(ex.diags, Diagnostic{
			Kind:    DiagDuplicateDefinition,
			Path:    filePath,
			Pos:     decl.Pos,
			Message: fmt.Sprintf("duplicate definition of %s", qualified),
			Target:  qualified,
		})
		return
	}
	seen[qualified] = true

	id := SymbolID(filePath, qualified)

	switch decl.Kind {
	case langsupport.DeclClass:
		ex.nodes = append(ex.nodes, Node{
			ID:        id,
			Kind:      KindClass,
			Name:      decl.Name,
			Qualified: qualified,
			Path:      filePath,
			Doc:       decl.Doc,
			Pos:       decl.Pos,
		})
		ex.edges = append(ex.edges, Edge{From: parentID, To: id, Kind: EdgeDefines})

		for _, base := range decl.Bases {
			ex.pending.bases = append(ex.pending.bases, pendingBase{classID: id, ref: base})
		}
		for _, child := range decl.Children {
			ex.extractDecl(filePath, id, qualified, id, child, seen)
		}

	case langsupport.DeclFunction:
		ex.nodes = append(ex.nodes, Node{
			ID:        id,
			Kind:      KindFunction,
			Name:      decl.Name,
			Qualified: qualified,
			Path:      filePath,
			Params:    append([]string(nil), decl.Params...),
			Signature: fmt.Sprintf("%s(%s)", decl.Name, strings.Join(decl.Params, ", ")),
			Doc:       decl.Doc,
			Pos:       decl.Pos,
		})
		ex.edges = append(ex.edges, Edge{From: parentID, To: id, Kind: EdgeDefines})

		for _, site := range decl.Calls {
			ex.pending.calls = append(ex.pending.calls, pendingCall{
				fnID:    id,
				classID: enclosingClassID,
				site:    site,
			})
		}
	}
}
