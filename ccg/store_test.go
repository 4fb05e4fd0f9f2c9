package ccg

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddNode_IsIdempotent(t *testing.T) {
	store := NewStore()

	err := store.AddNode(Node{ID: "app.py", Kind: KindFile, Name: "app.py"})
	require.NoError(t, err)

	err = store.AddNode(Node{ID: "app.py", Kind: KindFile, Name: "app.py"})
	require.NoError(t, err)

	assert.Len(t, store.NodesByKind(KindFile), 1)
	assert.Equal(t, 1, store.Stats().Nodes)
}

func TestStore_AddEdge_IsIdempotent(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddNode(Node{ID: "a", Kind: KindModule, Name: "a"}))
	require.NoError(t, store.AddNode(Node{ID: "b", Kind: KindModule, Name: "b"}))

	require.NoError(t, store.AddEdge(Edge{From: "a", To: "b", Kind: EdgeImports}))
	require.NoError(t, store.AddEdge(Edge{From: "a", To: "b", Kind: EdgeImports}))

	assert.Len(t, store.Edges(EdgeImports), 1)
	assert.Equal(t, 1, store.Stats().Edges)
}

func TestStore_AddEdge_UnknownEndpointIsInvariantViolation(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddNode(Node{ID: "a", Kind: KindModule, Name: "a"}))

	err := store.AddEdge(Edge{From: "a", To: "missing", Kind: EdgeCalls})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvariantViolation)

	err = store.AddEdge(Edge{From: "missing", To: "a", Kind: EdgeCalls})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestStore_Neighbors_FiltersByKindAndDirection(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddNode(Node{ID: "mod", Kind: KindModule, Name: "mod"}))
	require.NoError(t, store.AddNode(Node{ID: "mod::f", Kind: KindFunction, Name: "f"}))
	require.NoError(t, store.AddNode(Node{ID: "mod::g", Kind: KindFunction, Name: "g"}))

	require.NoError(t, store.AddEdge(Edge{From: "mod", To: "mod::f", Kind: EdgeDefines}))
	require.NoError(t, store.AddEdge(Edge{From: "mod", To: "mod::g", Kind: EdgeDefines}))
	require.NoError(t, store.AddEdge(Edge{From: "mod::f", To: "mod::g", Kind: EdgeCalls}))

	defined := store.Neighbors("mod", EdgeDefines, Outgoing)
	require.Len(t, defined, 2)
	assert.Equal(t, "mod::f", defined[0].ID)
	assert.Equal(t, "mod::g", defined[1].ID)

	callers := store.Neighbors("mod::g", EdgeCalls, Incoming)
	require.Len(t, callers, 1)
	assert.Equal(t, "mod::f", callers[0].ID)

	assert.Empty(t, store.Neighbors("mod::g", EdgeDefines, Outgoing))
}

func TestStore_ConcurrentInserts(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AddNode(Node{ID: "hub", Kind: KindModule, Name: "hub"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("n%d", i)
			if err := store.AddNode(Node{ID: id, Kind: KindFunction, Name: id}); err != nil {
				t.Error(err)
				return
			}
			if err := store.AddEdge(Edge{From: "hub", To: id, Kind: EdgeDefines}); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.NodesByKind(KindFunction), 50)
	assert.Len(t, store.Edges(EdgeDefines), 50)
}

func TestStore_DiagnosticsAreSorted(t *testing.T) {
	store := NewStore()

	store.AddDiagnostic(Diagnostic{Kind: DiagUnresolvedReference, Path: "b.py", Ref: RefCall, Target: "x"})
	store.AddDiagnostic(Diagnostic{Kind: DiagParseError, Path: "a.py", Message: "syntax error"})

	diags := store.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, "a.py", diags[0].Path)
	assert.Equal(t, "b.py", diags[1].Path)

	stats := store.Stats()
	assert.Equal(t, 1, stats.ParseErrors)
	assert.Equal(t, 1, stats.UnresolvedCalls)
}
