package registry

import (
	"path/filepath"

	"github.com/codecontexthq/contextgraph/ccg/langsupport"
	"github.com/codecontexthq/contextgraph/ccg/languages/javascript"
	"github.com/codecontexthq/contextgraph/ccg/languages/python"
	"github.com/codecontexthq/contextgraph/ccg/languages/typescript"
)

// variants is the single source of truth for supported language variants.
// Adding/removing a language should happen here.
var variants = []langsupport.Variant{
	javascript.Variant{},
	python.Variant{},
	typescript.Variant{},
}

// Variants returns supported language variants in deterministic order.
func Variants() []langsupport.Variant {
	return append([]langsupport.Variant(nil), variants...)
}

// VariantForExtension returns the variant registered for the provided extension.
func VariantForExtension(ext string) (langsupport.Variant, bool) {
	for _, variant := range variants {
		for _, variantExt := range variant.Extensions() {
			if variantExt == ext {
				return variant, true
			}
		}
	}

	return nil, false
}

// VariantForPath returns the variant for a file path, selected by extension.
func VariantForPath(path string) (langsupport.Variant, bool) {
	return VariantForExtension(filepath.Ext(path))
}

// VariantByName returns the variant with the given name tag.
func VariantByName(name string) (langsupport.Variant, bool) {
	for _, variant := range variants {
		if variant.Name() == name {
			return variant, true
		}
	}

	return nil, false
}
