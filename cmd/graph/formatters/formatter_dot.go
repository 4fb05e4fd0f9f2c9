package formatters

import (
	"fmt"
	"strings"

	"github.com/codecontexthq/contextgraph/ccg"
)

// DOTFormatter formats context graphs as Graphviz DOT.
type DOTFormatter struct{}

// nodeKindShapes maps node kinds to Graphviz shapes.
var nodeKindShapes = map[ccg.NodeKind]string{
	ccg.KindDirectory: "folder",
	ccg.KindFile:      "note",
	ccg.KindModule:    "box",
	ccg.KindClass:     "box",
	ccg.KindFunction:  "ellipse",
}

// edgeKindStyles maps edge kinds to Graphviz edge attributes.
var edgeKindStyles = map[ccg.EdgeKind]string{
	ccg.EdgeContains: "color=gray, style=dashed",
	ccg.EdgeDefines:  "color=gray",
	ccg.EdgeImports:  "color=blue",
	ccg.EdgeCalls:    "color=black",
	ccg.EdgeInherits: "color=red",
}

// Format converts the context graph to Graphviz DOT format.
func (f *DOTFormatter) Format(store *ccg.Store, opts FormatOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph contextgraph {\n")
	sb.WriteString("  rankdir=LR;\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=\"%s\";\n", escapeDOT(opts.Label)))
		sb.WriteString("  labelloc=t;\n")
		sb.WriteString("  labeljust=l;\n")
		sb.WriteString("  fontsize=10;\n")
		sb.WriteString("  fontname=Courier;\n")
	}
	sb.WriteString("\n")

	for _, kind := range nodeKinds {
		for _, n := range store.NodesByKind(kind) {
			label := n.Name
			if n.Kind == ccg.KindClass || n.Kind == ccg.KindFunction {
				label = n.Qualified
			}
			attrs := fmt.Sprintf("shape=%s, label=\"%s\"", nodeKindShapes[n.Kind], escapeDOT(label))
			if n.Kind == ccg.KindFile && n.Status == ccg.ParseFailed {
				attrs += ", color=red"
			}
			sb.WriteString(fmt.Sprintf("  \"%s\" [%s];\n", escapeDOT(n.ID), attrs))
		}
	}
	sb.WriteString("\n")

	for _, kind := range edgeKinds {
		for _, e := range store.Edges(kind) {
			attrs := edgeKindStyles[e.Kind]
			if e.Alias != "" {
				attrs += fmt.Sprintf(", label=\"%s\"", escapeDOT(e.Alias))
			}
			sb.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [%s];\n", escapeDOT(e.From), escapeDOT(e.To), attrs))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	return strings.ReplaceAll(s, "\"", "\\\"")
}
