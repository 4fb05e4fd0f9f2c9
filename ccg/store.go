package ccg

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	graphlib "github.com/dominikbraun/graph"
)

// ErrInvariantViolation indicates a bug in graph construction rather than
// a property of the analyzed code: an edge referenced a node that was never
// inserted. It is the only fatal error class; everything else is a diagnostic.
var ErrInvariantViolation = errors.New("graph invariant violation")

// Store owns every node and edge of one code context graph. It is the only
// shared mutable state of a run: Pass 1 writers insert nodes under disjoint
// or idempotent keys, Pass 2 writers append edges, and readers may query
// concurrently throughout.
type Store struct {
	mu     sync.RWMutex
	g      graphlib.Graph[string, Node]
	byKind map[NodeKind][]string
	out    map[string][]Edge
	in     map[string][]Edge
	edges  int
	diags  []Diagnostic
	stats  Stats
}

func nodeHash(n Node) string {
	return n.ID
}

// NewStore creates an empty store scoped to one analysis run.
func NewStore() *Store {
	return &Store{
		g:      graphlib.New(nodeHash, graphlib.Directed()),
		byKind: make(map[NodeKind][]string),
		out:    make(map[string][]Edge),
		in:     make(map[string][]Edge),
	}
}

// AddNode inserts a node, keyed by its identity. Inserting the same key
// twice is a no-op, not an error, so symmetric re-processing is tolerated.
func (s *Store) AddNode(n Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.g.AddVertex(n)
	if errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to insert node %s: %w", n.ID, err)
	}

	s.byKind[n.Kind] = append(s.byKind[n.Kind], n.ID)
	return nil
}

// AddEdge inserts a typed edge between two existing nodes. Inserting an
// identical (from, to) pair twice is a no-op. Referencing a missing node
// is an ErrInvariantViolation.
func (s *Store) AddEdge(e Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.g.Vertex(e.From); err != nil {
		return fmt.Errorf("%w: %s edge from unknown node %s", ErrInvariantViolation, e.Kind, e.From)
	}
	if _, err := s.g.Vertex(e.To); err != nil {
		return fmt.Errorf("%w: %s edge to unknown node %s", ErrInvariantViolation, e.Kind, e.To)
	}

	err := s.g.AddEdge(e.From, e.To, graphlib.EdgeData(e))
	if errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to insert %s edge %s -> %s: %w", e.Kind, e.From, e.To, err)
	}

	s.out[e.From] = append(s.out[e.From], e)
	s.in[e.To] = append(s.in[e.To], e)
	s.edges++
	return nil
}

// Node returns the node with the given identity.
func (s *Store) Node(id string) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, err := s.g.Vertex(id)
	if err != nil {
		return Node{}, false
	}
	return n, true
}

// NodesByKind returns all nodes of a kind, ordered by identity.
func (s *Store) NodesByKind(kind NodeKind) []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := append([]string(nil), s.byKind[kind]...)
	sort.Strings(ids)

	nodes := make([]Node, 0, len(ids))
	for _, id := range ids {
		if n, err := s.g.Vertex(id); err == nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Neighbors returns the nodes related to id by edges of the given kind,
// in edge insertion order.
func (s *Store) Neighbors(id string, kind EdgeKind, dir Direction) []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.neighborsLocked(id, kind, dir)
}

func (s *Store) neighborsLocked(id string, kind EdgeKind, dir Direction) []Node {
	edges := s.out[id]
	if dir == Incoming {
		edges = s.in[id]
	}

	var nodes []Node
	for _, e := range edges {
		if e.Kind != kind {
			continue
		}
		other := e.To
		if dir == Incoming {
			other = e.From
		}
		if n, err := s.g.Vertex(other); err == nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Edges returns all edges of a kind, ordered by endpoints.
func (s *Store) Edges(kind EdgeKind) []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var edges []Edge
	for _, out := range s.out {
		for _, e := range out {
			if e.Kind == kind {
				edges = append(edges, e)
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// AddDiagnostic records one diagnostic. Diagnostics are aggregated, never
// dropped; unresolved references land here instead of becoming edges.
func (s *Store) AddDiagnostic(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.diags = append(s.diags, d)
	switch d.Kind {
	case DiagParseError:
		s.stats.ParseErrors++
	case DiagUnresolvedReference:
		switch d.Ref {
		case RefImport:
			s.stats.UnresolvedImports++
		case RefCall:
			s.stats.UnresolvedCalls++
		case RefBase:
			s.stats.UnresolvedBases++
		}
	}
}

// Diagnostics returns every diagnostic of the run in stable order.
func (s *Store) Diagnostics() []Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	diags := append([]Diagnostic(nil), s.diags...)
	sortDiagnostics(diags)
	return diags
}

// Stats summarizes the finished graph.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := s.stats
	stats.Files = len(s.byKind[KindFile])
	stats.Edges = s.edges
	for _, ids := range s.byKind {
		stats.Nodes += len(ids)
	}
	return stats
}
