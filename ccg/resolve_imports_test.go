package ccg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codecontexthq/contextgraph/ccg/langsupport"
	"github.com/codecontexthq/contextgraph/ccg/languages/javascript"
	"github.com/codecontexthq/contextgraph/ccg/languages/python"
	"github.com/codecontexthq/contextgraph/source"
)

func testResolver(paths ...string) *resolver {
	files := make([]source.File, 0, len(paths))
	for _, p := range paths {
		files = append(files, source.File{Path: p})
	}
	return &resolver{store: NewStore(), index: newFileIndex(files)}
}

func TestResolveImportTarget_AbsoluteFromRepositoryRoot(t *testing.T) {
	r := testResolver("pkg/util.py", "app.py")

	target, ok := r.resolveImportTarget("app.py", langsupport.ImportDecl{
		Target:   "pkg.util",
		Segments: []string{"pkg", "util"},
	}, python.Variant{})

	assert.True(t, ok)
	assert.Equal(t, "pkg/util.py", target)
}

func TestResolveImportTarget_RelativeSameDirectory(t *testing.T) {
	r := testResolver("pkg/util.py", "pkg/app.py")

	target, ok := r.resolveImportTarget("pkg/app.py", langsupport.ImportDecl{
		Target:   ".util",
		Segments: []string{"util"},
		Relative: true,
	}, python.Variant{})

	assert.True(t, ok)
	assert.Equal(t, "pkg/util.py", target)
}

func TestResolveImportTarget_RelativeWalksUp(t *testing.T) {
	r := testResolver("pkg/shared/util.py", "pkg/sub/deep/app.py")

	target, ok := r.resolveImportTarget("pkg/sub/deep/app.py", langsupport.ImportDecl{
		Target:   "..shared.util",
		Segments: []string{"shared", "util"},
		Up:       2,
		Relative: true,
	}, python.Variant{})

	assert.True(t, ok)
	assert.Equal(t, "pkg/shared/util.py", target)
}

func TestResolveImportTarget_DirectoryResolvesToEntryFile(t *testing.T) {
	r := testResolver("pkg/__init__.py", "app.py")

	target, ok := r.resolveImportTarget("app.py", langsupport.ImportDecl{
		Target:   "pkg",
		Segments: []string{"pkg"},
	}, python.Variant{})

	assert.True(t, ok)
	assert.Equal(t, "pkg/__init__.py", target)
}

func TestResolveImportTarget_DirectoryWithoutEntryFileFails(t *testing.T) {
	r := testResolver("pkg/util.py", "app.py")

	_, ok := r.resolveImportTarget("app.py", langsupport.ImportDecl{
		Target:   "pkg",
		Segments: []string{"pkg"},
	}, python.Variant{})

	assert.False(t, ok)
}

func TestResolveImportTarget_ExternalPackageFails(t *testing.T) {
	r := testResolver("app.py")

	_, ok := r.resolveImportTarget("app.py", langsupport.ImportDecl{
		Target:   "requests",
		Segments: []string{"requests"},
	}, python.Variant{})

	assert.False(t, ok)
}

func TestResolveImportTarget_JavaScriptExtensionCandidates(t *testing.T) {
	r := testResolver("web/util.js", "web/app.js")

	target, ok := r.resolveImportTarget("web/app.js", langsupport.ImportDecl{
		Target:   "./util",
		Segments: []string{"util"},
		Relative: true,
	}, javascript.Variant{})

	assert.True(t, ok)
	assert.Equal(t, "web/util.js", target)
}

func TestResolveImportTarget_JavaScriptIndexEntryFile(t *testing.T) {
	r := testResolver("web/lib/index.js", "web/app.js")

	target, ok := r.resolveImportTarget("web/app.js", langsupport.ImportDecl{
		Target:   "./lib",
		Segments: []string{"lib"},
		Relative: true,
	}, javascript.Variant{})

	assert.True(t, ok)
	assert.Equal(t, "web/lib/index.js", target)
}

func TestResolveImportTarget_UpPastRootClampsAtRoot(t *testing.T) {
	r := testResolver("util.py", "pkg/app.py")

	target, ok := r.resolveImportTarget("pkg/app.py", langsupport.ImportDecl{
		Target:   "...util",
		Segments: []string{"util"},
		Up:       3,
		Relative: true,
	}, python.Variant{})

	assert.True(t, ok)
	assert.Equal(t, "util.py", target)
}
