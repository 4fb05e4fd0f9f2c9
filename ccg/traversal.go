package ccg

import (
	"fmt"
	"sort"
	"strings"

	graphlib "github.com/dominikbraun/graph"
)

// Ancestors returns every transitive base class of the given class,
// each exactly once. The walk is visited-set guarded, so inheritance
// cycles in the analyzed code terminate.
func (s *Store) Ancestors(classID string) []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visited := map[string]bool{classID: true}
	var ancestors []Node

	queue := []string{classID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, base := range s.neighborsLocked(current, EdgeInherits, Outgoing) {
			if visited[base.ID] {
				continue
			}
			visited[base.ID] = true
			ancestors = append(ancestors, base)
			queue = append(queue, base.ID)
		}
	}

	return ancestors
}

// detectInheritanceCycles scans the inherits subgraph for cycles and records
// one CyclicInheritanceWarning per cycle. The edges stay in the graph: a
// cycle is a property of the analyzed code, not a defect of this system.
func (s *Store) detectInheritanceCycles() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := graphlib.New(nodeHash, graphlib.Directed())
	for _, id := range s.byKind[KindClass] {
		n, err := s.g.Vertex(id)
		if err != nil {
			return fmt.Errorf("%w: class node %s missing during cycle scan", ErrInvariantViolation, id)
		}
		if err := sub.AddVertex(n); err != nil {
			return fmt.Errorf("failed to build inherits subgraph: %w", err)
		}
	}
	for _, id := range s.byKind[KindClass] {
		for _, e := range s.out[id] {
			if e.Kind != EdgeInherits {
				continue
			}
			if err := sub.AddEdge(e.From, e.To); err != nil {
				return fmt.Errorf("failed to build inherits subgraph: %w", err)
			}
		}
	}

	components, err := graphlib.StronglyConnectedComponents(sub)
	if err != nil {
		return fmt.Errorf("failed to scan for inheritance cycles: %w", err)
	}

	for _, component := range components {
		if len(component) < 2 && !s.hasSelfInheritLocked(component) {
			continue
		}
		s.recordCycleLocked(component)
	}

	return nil
}

func (s *Store) hasSelfInheritLocked(component []string) bool {
	if len(component) != 1 {
		return false
	}
	id := component[0]
	for _, e := range s.out[id] {
		if e.Kind == EdgeInherits && e.To == id {
			return true
		}
	}
	return false
}

func (s *Store) recordCycleLocked(component []string) {
	sort.Strings(component)

	names := make([]string, 0, len(component))
	for _, id := range component {
		if n, err := s.g.Vertex(id); err == nil {
			names = append(names, n.Qualified)
		}
	}

	first, _ := s.g.Vertex(component[0])
	s.diags = append(s.diags, Diagnostic{
		Kind:    DiagCyclicInheritance,
		Path:    first.Path,
		Message: fmt.Sprintf("inheritance cycle between %s", strings.Join(names, ", ")),
	})
}
