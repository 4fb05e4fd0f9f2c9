package formatters

import (
	"encoding/json"

	"github.com/codecontexthq/contextgraph/ccg"
)

// JSONFormatter formats context graphs as JSON.
type JSONFormatter struct{}

type jsonNode struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Qualified string `json:"qualified,omitempty"`
	Path      string `json:"path,omitempty"`
	Variant   string `json:"variant,omitempty"`
	Status    string `json:"status,omitempty"`
	Signature string `json:"signature,omitempty"`
	Doc       string `json:"doc,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
}

type jsonEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Kind  string `json:"kind"`
	Alias string `json:"alias,omitempty"`
}

type jsonDiagnostic struct {
	Kind    string `json:"kind"`
	Path    string `json:"path"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Ref     string `json:"ref,omitempty"`
	Target  string `json:"target,omitempty"`
	Message string `json:"message"`
}

type jsonStats struct {
	Files             int `json:"files"`
	ParseErrors       int `json:"parseErrors"`
	Nodes             int `json:"nodes"`
	Edges             int `json:"edges"`
	UnresolvedImports int `json:"unresolvedImports"`
	UnresolvedCalls   int `json:"unresolvedCalls"`
	UnresolvedBases   int `json:"unresolvedBases"`
}

type jsonGraph struct {
	Nodes       []jsonNode       `json:"nodes"`
	Edges       []jsonEdge       `json:"edges"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
	Stats       jsonStats        `json:"stats"`
}

// Format converts the context graph to JSON format.
func (f *JSONFormatter) Format(store *ccg.Store, opts FormatOptions) (string, error) {
	stats := store.Stats()
	out := jsonGraph{
		Nodes: []jsonNode{},
		Edges: []jsonEdge{},
		Stats: jsonStats{
			Files:             stats.Files,
			ParseErrors:       stats.ParseErrors,
			Nodes:             stats.Nodes,
			Edges:             stats.Edges,
			UnresolvedImports: stats.UnresolvedImports,
			UnresolvedCalls:   stats.UnresolvedCalls,
			UnresolvedBases:   stats.UnresolvedBases,
		},
	}

	for _, kind := range nodeKinds {
		for _, n := range store.NodesByKind(kind) {
			out.Nodes = append(out.Nodes, jsonNode{
				ID:        n.ID,
				Kind:      string(n.Kind),
				Name:      n.Name,
				Qualified: n.Qualified,
				Path:      n.Path,
				Variant:   n.Variant,
				Status:    string(n.Status),
				Signature: n.Signature,
				Doc:       n.Doc,
				Line:      n.Pos.Line,
				Column:    n.Pos.Column,
			})
		}
	}

	for _, kind := range edgeKinds {
		for _, e := range store.Edges(kind) {
			out.Edges = append(out.Edges, jsonEdge{
				From:  e.From,
				To:    e.To,
				Kind:  string(e.Kind),
				Alias: e.Alias,
			})
		}
	}

	if opts.Diagnostics {
		for _, d := range store.Diagnostics() {
			out.Diagnostics = append(out.Diagnostics, jsonDiagnostic{
				Kind:    string(d.Kind),
				Path:    d.Path,
				Line:    d.Pos.Line,
				Column:  d.Pos.Column,
				Ref:     string(d.Ref),
				Target:  d.Target,
				Message: d.Message,
			})
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
