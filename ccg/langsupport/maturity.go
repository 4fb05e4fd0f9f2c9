package langsupport

// MaturityLevel ranks how much test coverage backs a language variant's
// analysis. The zero value marks a variant with none yet.
type MaturityLevel int

const (
	MaturityUntested MaturityLevel = iota
	MaturityBasicTests
	MaturityActivelyTested
)

var maturityLabels = map[MaturityLevel]struct {
	symbol string
	name   string
}{
	MaturityUntested:       {"○", "Untested"},
	MaturityBasicTests:     {"◐", "Basic Tests"},
	MaturityActivelyTested: {"●", "Actively Tested"},
}

func (level MaturityLevel) DisplayName() string {
	if label, ok := maturityLabels[level]; ok {
		return label.name
	}
	return "Unknown"
}

func (level MaturityLevel) Symbol() string {
	if label, ok := maturityLabels[level]; ok {
		return label.symbol
	}
	return "?"
}
