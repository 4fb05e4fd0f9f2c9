package typescript

import (
	"github.com/codecontexthq/contextgraph/ccg/langsupport"
)

// Variant is the TypeScript language variant. TSX is excluded; it needs
// the separate tsx grammar.
type Variant struct{}

func (Variant) Name() string {
	return "TypeScript"
}

func (Variant) Extensions() []string {
	return []string{".ts", ".mts", ".cts"}
}

func (Variant) EntryFileNames() []string {
	return []string{"index.ts", "index.mts", "index.cts"}
}

func (Variant) Maturity() langsupport.MaturityLevel {
	return langsupport.MaturityBasicTests
}

func (Variant) Parse(source []byte) (*langsupport.FileAST, error) {
	return Parse(source)
}
