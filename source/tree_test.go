package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func paths(tree *Tree) []string {
	result := make([]string, 0, len(tree.Files))
	for _, f := range tree.Files {
		result = append(result, f.Path)
	}
	return result
}

func TestScan_CollectsSupportedFilesWithVariantTags(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "x = 1\n")
	writeFile(t, root, "web/index.js", "let x = 1;\n")
	writeFile(t, root, "web/types.ts", "let x = 1;\n")
	writeFile(t, root, "README.md", "# readme\n")

	tree, err := Scan(root)

	require.NoError(t, err)
	require.Len(t, tree.Files, 3)

	variants := make(map[string]string)
	for _, f := range tree.Files {
		variants[f.Path] = f.Variant
	}
	assert.Equal(t, "Python", variants["app.py"])
	assert.Equal(t, "JavaScript", variants["web/index.js"])
	assert.Equal(t, "TypeScript", variants["web/types.ts"])
}

func TestScan_SkipsWellKnownDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "x = 1\n")
	writeFile(t, root, "node_modules/lib/index.js", "let x = 1;\n")
	writeFile(t, root, ".git/hooks/sample.py", "x = 1\n")
	writeFile(t, root, "__pycache__/app.py", "x = 1\n")

	tree, err := Scan(root)

	require.NoError(t, err)
	assert.Equal(t, []string{"app.py"}, paths(tree))
}

func TestScan_HonorsRootGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated/\nskipme.py\n")
	writeFile(t, root, "app.py", "x = 1\n")
	writeFile(t, root, "skipme.py", "x = 1\n")
	writeFile(t, root, "generated/out.py", "x = 1\n")

	tree, err := Scan(root)

	require.NoError(t, err)
	assert.Equal(t, []string{"app.py"}, paths(tree))
}

func TestScan_ReaderReturnsContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/mod.py", "def f():\n    pass\n")

	tree, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, tree.Files, 1)

	content, err := tree.Read("pkg/mod.py")
	require.NoError(t, err)
	assert.Contains(t, string(content), "def f()")

	_, err = tree.Read("pkg/missing.py")
	assert.Error(t, err)
}
