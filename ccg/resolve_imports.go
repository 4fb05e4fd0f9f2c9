package ccg

import (
	"fmt"
	"path"

	"github.com/codecontexthq/contextgraph/ccg/langsupport"
	"github.com/codecontexthq/contextgraph/source"
)

// fileIndex is the repository file index Pass 2 resolves against: the set
// of analyzed file paths and every directory containing them.
type fileIndex struct {
	files map[string]bool
	dirs  map[string]bool
}

func newFileIndex(files []source.File) *fileIndex {
	idx := &fileIndex{
		files: make(map[string]bool, len(files)),
		dirs:  make(map[string]bool),
	}
	for _, f := range files {
		idx.files[f.Path] = true
		for dir := path.Dir(f.Path); dir != "." && dir != "/"; dir = path.Dir(dir) {
			idx.dirs[dir] = true
		}
	}
	return idx
}

// aliasBinding is one name an import bound in a file's scope. moduleID is
// empty when the target lives outside the analyzed repository.
type aliasBinding struct {
	moduleID string
	symbol   string // bound symbol; empty binds the whole module
}

// aliasTable maps binding names to their import targets, per file.
type aliasTable map[string]aliasBinding

// resolver executes Pass 2 for one file's raw references. It only reads
// Pass 1 nodes and appends edges and diagnostics; nothing created in
// Pass 1 is ever mutated.
type resolver struct {
	store *Store
	index *fileIndex
}

// resolveImports applies the import resolution policy to every raw import
// of a file and returns the file's alias table. Unresolved imports are
// recorded as diagnostics — external dependencies are the expected case —
// and still contribute an (external) alias binding for the call resolver.
func (r *resolver) resolveImports(pf *pendingFile) (aliasTable, error) {
	aliases := make(aliasTable)

	for _, imp := range pf.imports {
		targetPath, ok := r.resolveImportTarget(pf.path, imp, pf.variant)
		if !ok {
			r.store.AddDiagnostic(Diagnostic{
				Kind:    DiagUnresolvedReference,
				Path:    pf.path,
				Pos:     imp.Pos,
				Ref:     RefImport,
				Target:  imp.Target,
				Message: fmt.Sprintf("no repository match for import %q (external dependency)", imp.Target),
			})
			bindExternal(aliases, imp)
			continue
		}

		// A submodule import through a package entry ("from pkg import mod")
		// binds the whole sibling module rather than one of the entry's symbols.
		symbol := imp.Symbol
		if imp.Symbol != "" && isEntryFile(targetPath, pf.variant) && r.symbolMissing(targetPath, imp.Symbol) {
			if subPath, ok := r.lookupFile(path.Join(path.Dir(targetPath), imp.Symbol), pf.variant); ok {
				targetPath = subPath
				symbol = ""
			}
		}

		targetModuleID := ModuleID(targetPath)
		if _, ok := r.store.Node(targetModuleID); !ok {
			// The target file exists but contributed no module (parse error).
			r.store.AddDiagnostic(Diagnostic{
				Kind:    DiagUnresolvedReference,
				Path:    pf.path,
				Pos:     imp.Pos,
				Ref:     RefImport,
				Target:  imp.Target,
				Message: fmt.Sprintf("import target %q failed to parse", imp.Target),
			})
			bindExternal(aliases, imp)
			continue
		}

		err := r.store.AddEdge(Edge{
			From:  pf.moduleID,
			To:    targetModuleID,
			Kind:  EdgeImports,
			Alias: imp.BindingName(),
		})
		if err != nil {
			return nil, err
		}

		switch {
		case imp.Wildcard:
			for _, n := range r.store.Neighbors(targetModuleID, EdgeDefines, Outgoing) {
				aliases[n.Name] = aliasBinding{moduleID: targetModuleID, symbol: n.Name}
			}
		case symbol != "":
			aliases[imp.BindingName()] = aliasBinding{moduleID: targetModuleID, symbol: symbol}
		default:
			if name := imp.BindingName(); name != "" {
				aliases[name] = aliasBinding{moduleID: targetModuleID}
			}
		}
	}

	return aliases, nil
}

func bindExternal(aliases aliasTable, imp langsupport.ImportDecl) {
	if imp.Wildcard {
		return
	}
	if name := imp.BindingName(); name != "" {
		aliases[name] = aliasBinding{symbol: imp.Symbol}
	}
}

// resolveImportTarget maps one raw import to a repository file path.
// Relative imports walk up from the importing file's directory; absolute
// imports match from the repository root. A directory match resolves to
// the variant's package-entry file, if one exists.
func (r *resolver) resolveImportTarget(fromPath string, imp langsupport.ImportDecl, variant langsupport.Variant) (string, bool) {
	var candidate string
	if imp.Relative {
		dir := path.Dir(fromPath)
		for i := 0; i < imp.Up && dir != "." && dir != "/"; i++ {
			dir = path.Dir(dir)
		}
		candidate = path.Join(append([]string{dir}, imp.Segments...)...)
	} else {
		candidate = path.Join(imp.Segments...)
	}

	return r.lookupFile(candidate, variant)
}

// lookupFile resolves a candidate repository path to a file: exact match,
// extension candidates, then the directory's package-entry file.
func (r *resolver) lookupFile(candidate string, variant langsupport.Variant) (string, bool) {
	if r.index.files[candidate] {
		return candidate, true
	}

	for _, ext := range variant.Extensions() {
		if withExt := candidate + ext; r.index.files[withExt] {
			return withExt, true
		}
	}

	if r.index.dirs[candidate] {
		for _, entry := range variant.EntryFileNames() {
			if entryPath := path.Join(candidate, entry); r.index.files[entryPath] {
				return entryPath, true
			}
		}
	}

	return "", false
}

func isEntryFile(filePath string, variant langsupport.Variant) bool {
	base := path.Base(filePath)
	for _, entry := range variant.EntryFileNames() {
		if base == entry {
			return true
		}
	}
	return false
}

// symbolMissing reports whether the target module's top level lacks the
// imported symbol, suggesting it names a sibling module instead.
func (r *resolver) symbolMissing(targetPath, symbol string) bool {
	for _, n := range r.store.Neighbors(ModuleID(targetPath), EdgeDefines, Outgoing) {
		if n.Name == symbol {
			return false
		}
	}
	return true
}
