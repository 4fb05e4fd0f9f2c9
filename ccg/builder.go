package ccg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/codecontexthq/contextgraph/ccg/langsupport"
	"github.com/codecontexthq/contextgraph/ccg/registry"
	"github.com/codecontexthq/contextgraph/source"
)

// BuildOptions configures a graph build.
type BuildOptions struct {
	// Workers bounds parallelism for both passes. Default: runtime.NumCPU().
	Workers int

	// Logger receives pipeline progress. Default: slog.Default().
	Logger *slog.Logger
}

// BuildOption is a functional option for Build.
type BuildOption func(*BuildOptions)

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) BuildOption {
	return func(o *BuildOptions) {
		o.Workers = n
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(o *BuildOptions) {
		o.Logger = logger
	}
}

// Build runs the full two-pass pipeline over a source tree and returns the
// finished store. Pass 1 extracts every file independently in parallel;
// after the barrier, Pass 2 resolves raw references in parallel per file.
// Per-file failures become diagnostics; only an ErrInvariantViolation or
// context cancellation aborts the run.
func Build(ctx context.Context, tree *source.Tree, opts ...BuildOption) (*Store, error) {
	options := BuildOptions{
		Workers: runtime.NumCPU(),
		Logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}

	store := NewStore()
	index := newFileIndex(tree.Files)

	options.Logger.Info("ccg.build.start", "files", len(tree.Files), "workers", options.Workers)

	var mu sync.Mutex
	var pending []*pendingFile

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(options.Workers)
	for _, f := range tree.Files {
		f := f
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			pf, err := processFile(store, tree, f)
			if err != nil {
				return err
			}
			if pf != nil {
				mu.Lock()
				pending = append(pending, pf)
				mu.Unlock()
			}
			return nil
		})
	}

	// The barrier: no resolution may start until every file's Pass 1 has
	// completed, because targets may live in files processed later.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := insertTreeStructure(store, tree); err != nil {
		return nil, err
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].path < pending[j].path })

	options.Logger.Info("ccg.pass1.done", "modules", len(pending))

	g2, groupCtx2 := errgroup.WithContext(ctx)
	g2.SetLimit(options.Workers)
	for _, pf := range pending {
		pf := pf
		g2.Go(func() error {
			if err := groupCtx2.Err(); err != nil {
				return err
			}
			res := &resolver{store: store, index: index}
			aliases, err := res.resolveImports(pf)
			if err != nil {
				return err
			}
			scope := res.fileScope(pf.moduleID)
			if err := res.resolveCalls(pf, aliases, scope); err != nil {
				return err
			}
			return res.resolveBases(pf, aliases, scope)
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	if err := store.detectInheritanceCycles(); err != nil {
		return nil, err
	}

	stats := store.Stats()
	options.Logger.Info("ccg.build.done",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"parse_errors", stats.ParseErrors,
		"unresolved", stats.UnresolvedImports+stats.UnresolvedCalls+stats.UnresolvedBases,
	)

	return store, nil
}

// processFile runs Pass 1 for one file: parse, extract, insert. A parse
// failure contributes a File node with parse-error status and a diagnostic,
// never an error; sibling files are unaffected.
func processFile(store *Store, tree *source.Tree, f source.File) (*pendingFile, error) {
	variant, ok := registry.VariantByName(f.Variant)
	if !ok {
		variant, ok = registry.VariantForPath(f.Path)
	}

	fileNode := Node{
		ID:      PathID(f.Path),
		Kind:    KindFile,
		Name:    path.Base(f.Path),
		Path:    f.Path,
		Variant: f.Variant,
		Status:  ParseOK,
	}

	if !ok {
		fileNode.Status = ParseFailed
		if err := store.AddNode(fileNode); err != nil {
			return nil, err
		}
		store.AddDiagnostic(Diagnostic{
			Kind:    DiagParseError,
			Path:    f.Path,
			Message: fmt.Sprintf("no language variant registered for %q", f.Variant),
		})
		return nil, nil
	}

	content, readErr := tree.Read(f.Path)
	var ast *langsupport.FileAST
	var parseErr error
	if readErr != nil {
		parseErr = readErr
	} else {
		ast, parseErr = variant.Parse(content)
	}

	if parseErr != nil {
		fileNode.Status = ParseFailed
		if err := store.AddNode(fileNode); err != nil {
			return nil, err
		}

		diag := Diagnostic{
			Kind:    DiagParseError,
			Path:    f.Path,
			Message: parseErr.Error(),
		}
		var pe *langsupport.ParseError
		if errors.As(parseErr, &pe) {
			pe.Path = f.Path
			diag.Pos = langsupport.Position{Line: pe.Line, Column: pe.Column}
			diag.Message = pe.Message
		}
		store.AddDiagnostic(diag)
		return nil, nil
	}

	if err := store.AddNode(fileNode); err != nil {
		return nil, err
	}

	ex := extractFile(f.Path, variant, ast)
	for _, n := range ex.nodes {
		if err := store.AddNode(n); err != nil {
			return nil, err
		}
	}
	if err := store.AddEdge(Edge{From: fileNode.ID, To: ex.pending.moduleID, Kind: EdgeContains}); err != nil {
		return nil, err
	}
	for _, e := range ex.edges {
		if err := store.AddEdge(e); err != nil {
			return nil, err
		}
	}
	for _, d := range ex.diags {
		store.AddDiagnostic(d)
	}

	return &ex.pending, nil
}

// insertTreeStructure adds Directory nodes and containment edges for every
// ancestor directory of the analyzed files. Directories are purely
// structural; the repository root itself is not a node.
func insertTreeStructure(store *Store, tree *source.Tree) error {
	seen := make(map[string]bool)

	for _, f := range tree.Files {
		dir := path.Dir(f.Path)

		var chain []string
		for d := dir; d != "." && d != "/"; d = path.Dir(d) {
			chain = append(chain, d)
		}

		for i := len(chain) - 1; i >= 0; i-- {
			d := chain[i]
			if !seen[d] {
				seen[d] = true
				err := store.AddNode(Node{
					ID:   PathID(d),
					Kind: KindDirectory,
					Name: path.Base(d),
					Path: d,
				})
				if err != nil {
					return err
				}
			}
			if parent := path.Dir(d); parent != "." && parent != "/" {
				if err := store.AddEdge(Edge{From: PathID(parent), To: PathID(d), Kind: EdgeContains}); err != nil {
					return err
				}
			}
		}

		if dir != "." && dir != "/" {
			if _, ok := store.Node(PathID(f.Path)); !ok {
				continue
			}
			if err := store.AddEdge(Edge{From: PathID(dir), To: PathID(f.Path), Kind: EdgeContains}); err != nil {
				return err
			}
		}
	}

	return nil
}
