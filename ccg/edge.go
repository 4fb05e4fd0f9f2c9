package ccg

// EdgeKind identifies the typed relation an edge carries.
type EdgeKind string

const (
	// EdgeContains is structural tree containment:
	// Directory -> Directory/File and File -> Module.
	EdgeContains EdgeKind = "contains"

	// EdgeDefines is declaration containment, created only in Pass 1:
	// Module -> Class, Module -> Function, Class -> Function.
	EdgeDefines EdgeKind = "defines"

	// EdgeImports links an importing Module to a resolved target Module.
	EdgeImports EdgeKind = "imports"

	// EdgeCalls links a calling Function to a resolved callee Function.
	EdgeCalls EdgeKind = "calls"

	// EdgeInherits links a Class to a resolved base Class.
	EdgeInherits EdgeKind = "inherits"
)

// Direction selects edge orientation for neighbor queries.
type Direction int

const (
	Outgoing Direction = iota
	Incoming
)

// Edge is one typed relation between two nodes already present in the store.
type Edge struct {
	From string
	To   string
	Kind EdgeKind

	// Alias is the imported symbol or binding name for imports edges.
	Alias string
}
