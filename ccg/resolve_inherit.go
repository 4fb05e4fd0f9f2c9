package ccg

import (
	"fmt"
	"strings"
)

// resolveBases resolves every raw base-class reference of a file's classes
// into inherits edges. The order mirrors call resolution without the
// enclosing-class step: local scope, then imported-symbol bindings, then
// unresolved.
func (r *resolver) resolveBases(pf *pendingFile, aliases aliasTable, scope []Node) error {
	aliasNames := sortedAliases(aliases)

	for _, base := range pf.bases {
		target, external := r.resolveBaseTarget(pf, base, aliases, aliasNames, scope)
		if target == "" {
			message := fmt.Sprintf("unresolved base class %q", base.ref.Name)
			if external {
				message = fmt.Sprintf("base class %q targets an external dependency", base.ref.Name)
			}
			r.store.AddDiagnostic(Diagnostic{
				Kind:    DiagUnresolvedReference,
				Path:    pf.path,
				Pos:     base.ref.Pos,
				Ref:     RefBase,
				Target:  base.ref.Name,
				Message: message,
			})
			continue
		}

		if err := r.store.AddEdge(Edge{From: base.classID, To: target, Kind: EdgeInherits}); err != nil {
			return err
		}
	}

	return nil
}

func (r *resolver) resolveBaseTarget(pf *pendingFile, base pendingBase, aliases aliasTable, aliasNames []string, scope []Node) (target string, external bool) {
	ref := base.ref.Name

	if class, ok := matchInScope(scope, KindClass, pf.moduleName, ref); ok {
		return class.ID, false
	}

	if binding, ok := aliases[ref]; ok && binding.symbol != "" {
		if binding.moduleID == "" {
			return "", true
		}
		if class, ok := r.exportedClass(binding.moduleID, binding.symbol); ok {
			return class.ID, false
		}
		return "", false
	}

	for _, alias := range aliasNames {
		if !strings.HasPrefix(ref, alias+".") {
			continue
		}
		binding := aliases[alias]
		if binding.moduleID == "" {
			return "", true
		}
		if binding.symbol != "" {
			return "", false
		}
		rest := strings.TrimPrefix(ref, alias+".")
		if strings.Contains(rest, ".") {
			return "", false
		}
		if class, ok := r.exportedClass(binding.moduleID, rest); ok {
			return class.ID, false
		}
		return "", false
	}

	return "", false
}

// exportedClass finds a top-level class of a module by name.
func (r *resolver) exportedClass(moduleID, name string) (Node, bool) {
	for _, n := range r.store.Neighbors(moduleID, EdgeDefines, Outgoing) {
		if n.Kind == KindClass && n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}
