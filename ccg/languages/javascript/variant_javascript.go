package javascript

import (
	"github.com/codecontexthq/contextgraph/ccg/langsupport"
)

// Variant is the JavaScript language variant (including JSX).
type Variant struct{}

func (Variant) Name() string {
	return "JavaScript"
}

func (Variant) Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs"}
}

func (Variant) EntryFileNames() []string {
	return []string{"index.js", "index.jsx", "index.mjs", "index.cjs"}
}

func (Variant) Maturity() langsupport.MaturityLevel {
	return langsupport.MaturityBasicTests
}

func (Variant) Parse(source []byte) (*langsupport.FileAST, error) {
	return Parse(source)
}
