package formatters

import (
	"fmt"
	"strings"

	"github.com/codecontexthq/contextgraph/ccg"
)

// TextFormatter renders a context graph as a plain-text listing.
type TextFormatter struct{}

// Format writes one section per node kind and edge kind, in a stable order.
func (f *TextFormatter) Format(store *ccg.Store, opts FormatOptions) (string, error) {
	var b strings.Builder

	if opts.Label != "" {
		fmt.Fprintf(&b, "# %s\n\n", opts.Label)
	}

	for _, kind := range nodeKinds {
		nodes := store.NodesByKind(kind)
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s (%d)\n", kind, len(nodes))
		for _, n := range nodes {
			line := "  " + n.ID
			if n.Kind == ccg.KindFile && n.Status == ccg.ParseFailed {
				line += " [parse-error]"
			}
			if n.Kind == ccg.KindFunction && n.Signature != "" {
				line += "  " + n.Signature
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	for _, kind := range edgeKinds {
		edges := store.Edges(kind)
		if len(edges) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s (%d)\n", kind, len(edges))
		for _, e := range edges {
			if e.Alias != "" {
				fmt.Fprintf(&b, "  %s -> %s (as %s)\n", e.From, e.To, e.Alias)
			} else {
				fmt.Fprintf(&b, "  %s -> %s\n", e.From, e.To)
			}
		}
		b.WriteString("\n")
	}

	if opts.Diagnostics {
		diags := store.Diagnostics()
		if len(diags) > 0 {
			fmt.Fprintf(&b, "diagnostics (%d)\n", len(diags))
			for _, d := range diags {
				fmt.Fprintf(&b, "  %s\n", d.String())
			}
			b.WriteString("\n")
		}
	}

	stats := store.Stats()
	fmt.Fprintf(&b, "files: %d, nodes: %d, edges: %d, parse errors: %d, unresolved: %d\n",
		stats.Files, stats.Nodes, stats.Edges, stats.ParseErrors,
		stats.UnresolvedImports+stats.UnresolvedCalls+stats.UnresolvedBases)

	return b.String(), nil
}
