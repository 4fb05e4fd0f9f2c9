package formatters

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecontexthq/contextgraph/ccg"
	"github.com/codecontexthq/contextgraph/ccg/langsupport"
)

// sampleStore builds a small fixed graph: app.py imports pkg/util.py as u
// and calls its slugify function, plus one unresolved external import.
func sampleStore(t *testing.T) *ccg.Store {
	t.Helper()
	store := ccg.NewStore()

	nodes := []ccg.Node{
		{ID: "pkg", Kind: ccg.KindDirectory, Name: "pkg", Path: "pkg"},
		{ID: "app.py", Kind: ccg.KindFile, Name: "app.py", Path: "app.py", Variant: "Python", Status: ccg.ParseOK},
		{ID: "pkg/util.py", Kind: ccg.KindFile, Name: "util.py", Path: "pkg/util.py", Variant: "Python", Status: ccg.ParseOK},
		{ID: "app.py::app", Kind: ccg.KindModule, Name: "app", Qualified: "app", Path: "app.py"},
		{ID: "pkg/util.py::util", Kind: ccg.KindModule, Name: "util", Qualified: "util", Path: "pkg/util.py"},
		{ID: "app.py::app.main", Kind: ccg.KindFunction, Name: "main", Qualified: "app.main", Path: "app.py", Signature: "main()"},
		{ID: "pkg/util.py::util.slugify", Kind: ccg.KindFunction, Name: "slugify", Qualified: "util.slugify", Path: "pkg/util.py", Params: []string{"text"}, Signature: "slugify(text)"},
	}
	for _, n := range nodes {
		require.NoError(t, store.AddNode(n))
	}

	edges := []ccg.Edge{
		{From: "pkg", To: "pkg/util.py", Kind: ccg.EdgeContains},
		{From: "app.py", To: "app.py::app", Kind: ccg.EdgeContains},
		{From: "pkg/util.py", To: "pkg/util.py::util", Kind: ccg.EdgeContains},
		{From: "app.py::app", To: "app.py::app.main", Kind: ccg.EdgeDefines},
		{From: "pkg/util.py::util", To: "pkg/util.py::util.slugify", Kind: ccg.EdgeDefines},
		{From: "app.py::app", To: "pkg/util.py::util", Kind: ccg.EdgeImports, Alias: "u"},
		{From: "app.py::app.main", To: "pkg/util.py::util.slugify", Kind: ccg.EdgeCalls},
	}
	for _, e := range edges {
		require.NoError(t, store.AddEdge(e))
	}

	store.AddDiagnostic(ccg.Diagnostic{
		Kind:    ccg.DiagUnresolvedReference,
		Path:    "app.py",
		Pos:     langsupport.Position{Line: 2, Column: 1},
		Ref:     ccg.RefImport,
		Target:  "requests",
		Message: `no repository match for import "requests" (external dependency)`,
	})

	return store
}

func TestTextFormatter_Golden(t *testing.T) {
	formatter := &TextFormatter{}

	output, err := formatter.Format(sampleStore(t), FormatOptions{Label: "sample", Diagnostics: true})
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestJSONFormatter_RoundTrips(t *testing.T) {
	formatter := &JSONFormatter{}

	output, err := formatter.Format(sampleStore(t), FormatOptions{Diagnostics: true})
	require.NoError(t, err)

	var decoded struct {
		Nodes []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"nodes"`
		Edges []struct {
			From  string `json:"from"`
			To    string `json:"to"`
			Kind  string `json:"kind"`
			Alias string `json:"alias"`
		} `json:"edges"`
		Diagnostics []struct {
			Kind string `json:"kind"`
		} `json:"diagnostics"`
		Stats struct {
			Files             int `json:"files"`
			Nodes             int `json:"nodes"`
			Edges             int `json:"edges"`
			UnresolvedImports int `json:"unresolvedImports"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &decoded))

	assert.Len(t, decoded.Nodes, 7)
	assert.Len(t, decoded.Edges, 7)
	assert.Len(t, decoded.Diagnostics, 1)
	assert.Equal(t, 2, decoded.Stats.Files)
	assert.Equal(t, 7, decoded.Stats.Nodes)
	assert.Equal(t, 7, decoded.Stats.Edges)
	assert.Equal(t, 1, decoded.Stats.UnresolvedImports)

	var aliased bool
	for _, e := range decoded.Edges {
		if e.Kind == "imports" && e.Alias == "u" {
			aliased = true
		}
	}
	assert.True(t, aliased)
}

func TestDOTFormatter_EmitsNodesAndTypedEdges(t *testing.T) {
	formatter := &DOTFormatter{}

	output, err := formatter.Format(sampleStore(t), FormatOptions{Label: "sample"})
	require.NoError(t, err)

	assert.Contains(t, output, "digraph contextgraph {")
	assert.Contains(t, output, `label="sample";`)
	assert.Contains(t, output, `"pkg/util.py::util.slugify" [shape=ellipse`)
	assert.Contains(t, output, `"app.py::app" -> "pkg/util.py::util" [color=blue, label="u"];`)
	assert.Contains(t, output, `"app.py::app.main" -> "pkg/util.py::util.slugify" [color=black];`)
}

func TestNewFormatter_UnknownFormat(t *testing.T) {
	_, err := NewFormatter("yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
