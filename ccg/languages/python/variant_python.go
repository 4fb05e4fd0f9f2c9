package python

import (
	"github.com/codecontexthq/contextgraph/ccg/langsupport"
)

// Variant is the Python language variant.
type Variant struct{}

func (Variant) Name() string {
	return "Python"
}

func (Variant) Extensions() []string {
	return []string{".py"}
}

func (Variant) EntryFileNames() []string {
	return []string{"__init__.py"}
}

func (Variant) Maturity() langsupport.MaturityLevel {
	return langsupport.MaturityActivelyTested
}

func (Variant) Parse(source []byte) (*langsupport.FileAST, error) {
	return Parse(source)
}
