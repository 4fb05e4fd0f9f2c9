package formatters

import (
	"fmt"

	"github.com/codecontexthq/contextgraph/ccg"
)

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatDOT  OutputFormat = "dot"
)

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// FormatOptions contains optional parameters for formatting context graphs.
type FormatOptions struct {
	// Label is an optional title or label for the graph
	Label string
	// Diagnostics includes the diagnostics section in formats that support it
	Diagnostics bool
}

// Formatter is the interface that all graph formatters must implement.
type Formatter interface {
	// Format converts a context graph store to a formatted string representation.
	Format(store *ccg.Store, opts FormatOptions) (string, error)
}

// NewFormatter creates a Formatter for the specified format type.
// Supported formats: "text", "json", "dot"
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "dot":
		return &DOTFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: text, json, dot)", format)
	}
}

// nodeKinds is the display order for node sections.
var nodeKinds = []ccg.NodeKind{
	ccg.KindDirectory,
	ccg.KindFile,
	ccg.KindModule,
	ccg.KindClass,
	ccg.KindFunction,
}

// edgeKinds is the display order for edge sections.
var edgeKinds = []ccg.EdgeKind{
	ccg.EdgeContains,
	ccg.EdgeDefines,
	ccg.EdgeImports,
	ccg.EdgeCalls,
	ccg.EdgeInherits,
}
