package ccg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classNode(id string) Node {
	return Node{ID: id, Kind: KindClass, Name: id, Qualified: id}
}

func TestAncestors_DiamondHierarchyReportsEachBaseOnce(t *testing.T) {
	store := NewStore()
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, store.AddNode(classNode(id)))
	}
	require.NoError(t, store.AddEdge(Edge{From: "D", To: "B", Kind: EdgeInherits}))
	require.NoError(t, store.AddEdge(Edge{From: "D", To: "C", Kind: EdgeInherits}))
	require.NoError(t, store.AddEdge(Edge{From: "B", To: "A", Kind: EdgeInherits}))
	require.NoError(t, store.AddEdge(Edge{From: "C", To: "A", Kind: EdgeInherits}))

	ancestors := store.Ancestors("D")

	ids := make([]string, 0, len(ancestors))
	for _, n := range ancestors {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"A", "B", "C"}, ids)
}

func TestAncestors_CycleTerminates(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddNode(classNode("A")))
	require.NoError(t, store.AddNode(classNode("B")))
	require.NoError(t, store.AddEdge(Edge{From: "A", To: "B", Kind: EdgeInherits}))
	require.NoError(t, store.AddEdge(Edge{From: "B", To: "A", Kind: EdgeInherits}))

	ancestors := store.Ancestors("A")

	require.Len(t, ancestors, 1)
	assert.Equal(t, "B", ancestors[0].ID)
}

func TestDetectInheritanceCycles_RecordsOneDiagnosticPerCycle(t *testing.T) {
	store := NewStore()
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, store.AddNode(classNode(id)))
	}
	require.NoError(t, store.AddEdge(Edge{From: "A", To: "B", Kind: EdgeInherits}))
	require.NoError(t, store.AddEdge(Edge{From: "B", To: "A", Kind: EdgeInherits}))
	require.NoError(t, store.AddEdge(Edge{From: "C", To: "A", Kind: EdgeInherits}))

	require.NoError(t, store.detectInheritanceCycles())

	var cycles []Diagnostic
	for _, d := range store.Diagnostics() {
		if d.Kind == DiagCyclicInheritance {
			cycles = append(cycles, d)
		}
	}
	require.Len(t, cycles, 1)
	assert.Contains(t, cycles[0].Message, "A")
	assert.Contains(t, cycles[0].Message, "B")
	assert.NotContains(t, cycles[0].Message, "C")
}
