package graph

import (
	"bytes"
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

func TestGraphCommand_TextOutputForFixtureTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "mod_a.py", `
def g():
    pass
`)
	writeFile(t, root, "mod_b.py", `
import mod_a

def f():
    mod_a.g()
`)

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{root})

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "mod_a.py::mod_a.g")
	assert.Contains(t, output, "mod_b.py::mod_b.f")
	assert.Contains(t, output, "mod_b.py::mod_b -> mod_a.py::mod_a")
	assert.Contains(t, output, "mod_b.py::mod_b.f -> mod_a.py::mod_a.g")
	assert.Contains(t, output, "files: 2")
}

func TestGraphCommand_JSONFormat(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", `
def main():
    pass
`)

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-f", "json", root})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), `"kind": "function"`)
	assert.Contains(t, out.String(), `"id": "app.py::app.main"`)
}

func TestGraphCommand_EmptyTreeFails(t *testing.T) {
	root := t.TempDir()

	cmd := NewCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{root})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no supported source files")
}

func TestGraphCommand_UnknownFormatFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app.py", "x = 1\n")

	cmd := NewCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"-f", "yaml", root})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
