package ccg

import (
	"fmt"
	"sort"
	"strings"
)

// fileScope is the defines closure of one module: every Class and Function
// declared in the file, at any nesting depth.
func (r *resolver) fileScope(moduleID string) []Node {
	var scope []Node

	queue := []string{moduleID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range r.store.Neighbors(current, EdgeDefines, Outgoing) {
			scope = append(scope, n)
			if n.Kind == KindClass {
				queue = append(queue, n.ID)
			}
		}
	}

	return scope
}

// matchInScope resolves a textual reference against a file's own scope.
// A simple name matches only top-level declarations; a dotted name matches
// the qualified name with or without the module prefix.
func matchInScope(scope []Node, kind NodeKind, moduleName, ref string) (Node, bool) {
	for _, n := range scope {
		if n.Kind != kind {
			continue
		}
		if n.Qualified == moduleName+"."+ref || n.Qualified == ref {
			return n, true
		}
	}
	return Node{}, false
}

// sortedAliases returns alias names longest-first so dotted callees match
// the most specific module binding, independent of map iteration order.
func sortedAliases(aliases aliasTable) []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// resolveCalls applies the call resolution order to every raw call-site of
// a file: local module scope, then the enclosing class's methods, then
// imported-symbol bindings. First match wins, no backtracking. Anything
// else is an unresolved-reference statistic, the expected outcome for calls
// into dependencies or through receivers that would need type inference.
func (r *resolver) resolveCalls(pf *pendingFile, aliases aliasTable, scope []Node) error {
	aliasNames := sortedAliases(aliases)

	for _, call := range pf.calls {
		target, external := r.resolveCallTarget(pf, call, aliases, aliasNames, scope)
		if target == "" {
			message := fmt.Sprintf("unresolved call to %q", call.site.Callee)
			if external {
				message = fmt.Sprintf("call to %q targets an external dependency", call.site.Callee)
			}
			r.store.AddDiagnostic(Diagnostic{
				Kind:    DiagUnresolvedReference,
				Path:    pf.path,
				Pos:     call.site.Pos,
				Ref:     RefCall,
				Target:  call.site.Callee,
				Message: message,
			})
			continue
		}

		if err := r.store.AddEdge(Edge{From: call.fnID, To: target, Kind: EdgeCalls}); err != nil {
			return err
		}
	}

	return nil
}

func (r *resolver) resolveCallTarget(pf *pendingFile, call pendingCall, aliases aliasTable, aliasNames []string, scope []Node) (target string, external bool) {
	callee := call.site.Callee

	// 1. Local scope: a function in the same module by simple or qualified name.
	if fn, ok := matchInScope(scope, KindFunction, pf.moduleName, callee); ok {
		return fn.ID, false
	}

	// 2. The enclosing class's own methods, for attribute-style calls on the
	// implicit instance. Receivers other than the implicit instance would
	// need type inference and stay unresolved.
	if call.classID != "" {
		name := callee
		for _, receiver := range []string{"self.", "this."} {
			if strings.HasPrefix(callee, receiver) {
				name = strings.TrimPrefix(callee, receiver)
				break
			}
		}
		if !strings.Contains(name, ".") {
			for _, m := range r.store.Neighbors(call.classID, EdgeDefines, Outgoing) {
				if m.Kind == KindFunction && m.Name == name {
					return m.ID, false
				}
			}
		}
	}

	// 3. Imported-symbol bindings from the file's alias table.
	if binding, ok := aliases[callee]; ok && binding.symbol != "" {
		if binding.moduleID == "" {
			return "", true
		}
		if fn, ok := r.exportedFunction(binding.moduleID, binding.symbol); ok {
			return fn.ID, false
		}
		return "", false
	}

	for _, alias := range aliasNames {
		if !strings.HasPrefix(callee, alias+".") {
			continue
		}
		binding := aliases[alias]
		if binding.moduleID == "" {
			return "", true
		}
		if binding.symbol != "" {
			// Attribute access on an imported symbol: receiver type unknown.
			return "", false
		}
		rest := strings.TrimPrefix(callee, alias+".")
		if strings.Contains(rest, ".") {
			return "", false
		}
		if fn, ok := r.exportedFunction(binding.moduleID, rest); ok {
			return fn.ID, false
		}
		return "", false
	}

	return "", false
}

// exportedFunction finds a top-level function of a module by name.
func (r *resolver) exportedFunction(moduleID, name string) (Node, bool) {
	for _, n := range r.store.Neighbors(moduleID, EdgeDefines, Outgoing) {
		if n.Kind == KindFunction && n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}
