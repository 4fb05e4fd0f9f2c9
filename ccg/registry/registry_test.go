package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariants_SortedByName(t *testing.T) {
	variants := Variants()

	require.Len(t, variants, 3)
	assert.Equal(t, "JavaScript", variants[0].Name())
	assert.Equal(t, "Python", variants[1].Name())
	assert.Equal(t, "TypeScript", variants[2].Name())
}

func TestVariantForExtension(t *testing.T) {
	v, ok := VariantForExtension(".py")
	require.True(t, ok)
	assert.Equal(t, "Python", v.Name())

	v, ok = VariantForExtension(".mjs")
	require.True(t, ok)
	assert.Equal(t, "JavaScript", v.Name())

	_, ok = VariantForExtension(".rb")
	assert.False(t, ok)
}

func TestVariantForPath(t *testing.T) {
	v, ok := VariantForPath("pkg/sub/app.py")
	require.True(t, ok)
	assert.Equal(t, "Python", v.Name())

	v, ok = VariantForPath("web/index.ts")
	require.True(t, ok)
	assert.Equal(t, "TypeScript", v.Name())

	_, ok = VariantForPath("README.md")
	assert.False(t, ok)
}

func TestVariantByName(t *testing.T) {
	v, ok := VariantByName("TypeScript")
	require.True(t, ok)
	assert.Equal(t, "TypeScript", v.Name())

	_, ok = VariantByName("COBOL")
	assert.False(t, ok)
}
