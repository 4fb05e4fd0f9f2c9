package ccg

import (
	"fmt"
	"sort"

	"github.com/codecontexthq/contextgraph/ccg/langsupport"
)

// DiagnosticKind classifies a diagnostic.
type DiagnosticKind string

const (
	// DiagParseError: the file contributed no structural nodes; siblings unaffected.
	DiagParseError DiagnosticKind = "parse-error"

	// DiagDuplicateDefinition: two declarations claimed the same qualified
	// name within one file; the first won.
	DiagDuplicateDefinition DiagnosticKind = "duplicate-definition"

	// DiagUnresolvedReference: an import, call, or base-class reference that
	// could not be mapped to a node. Expected, not an error.
	DiagUnresolvedReference DiagnosticKind = "unresolved-reference"

	// DiagCyclicInheritance: an inheritance cycle in the analyzed code.
	// Edges are retained; traversal is cycle-safe.
	DiagCyclicInheritance DiagnosticKind = "cyclic-inheritance"
)

// RefKind says which reference kind an unresolved diagnostic is about.
type RefKind string

const (
	RefImport RefKind = "import"
	RefCall   RefKind = "call"
	RefBase   RefKind = "base-class"
)

// Diagnostic is one recoverable finding aggregated during a run.
type Diagnostic struct {
	Kind    DiagnosticKind
	Path    string
	Pos     langsupport.Position
	Message string
	Ref     RefKind // set for unresolved-reference diagnostics
	Target  string  // textual reference target, when applicable
}

func (d Diagnostic) String() string {
	if d.Pos.Line > 0 {
		return fmt.Sprintf("%s %s:%d:%d: %s", d.Kind, d.Path, d.Pos.Line, d.Pos.Column, d.Message)
	}
	if d.Path != "" {
		return fmt.Sprintf("%s %s: %s", d.Kind, d.Path, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// sortDiagnostics orders diagnostics by path, position, kind, then message
// so the reported sequence is independent of worker scheduling.
func sortDiagnostics(diags []Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		if a.Pos.Column != b.Pos.Column {
			return a.Pos.Column < b.Pos.Column
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Message < b.Message
	})
}

// Stats summarizes a finished run.
type Stats struct {
	Files             int
	ParseErrors       int
	Nodes             int
	Edges             int
	UnresolvedImports int
	UnresolvedCalls   int
	UnresolvedBases   int
}
