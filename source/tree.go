// Package source models the rooted file tree the graph core consumes:
// stable repository-relative paths, byte content per file, and a
// language-variant tag. How the tree got onto disk (clone, checkout,
// archive) is the caller's concern.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/codecontexthq/contextgraph/ccg/registry"
)

// ContentReader is a function that reads file content given a repository-relative
// path. This allows the caller to control how files are read (filesystem, git, etc.)
type ContentReader func(filePath string) ([]byte, error)

// File is one analyzable file in the tree.
type File struct {
	Path    string // repository-relative, slash-separated
	Variant string // language variant tag, e.g. "Python"
}

// Tree is a rooted source tree handed to the graph builder.
type Tree struct {
	Root  string
	Files []File
	Read  ContentReader
}

// skippedDirs are never descended into during discovery.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".dart_tool":   true,
	"build":        true,
	"dist":         true,
	"__pycache__":  true,
	".gradle":      true,
	".idea":        true,
	".vscode":      true,
	".venv":        true,
	"venv":         true,
}

// Scan walks root and returns a Tree containing every file with a
// registered language variant. Directories in the skip list and paths
// matched by a root-level .gitignore are excluded.
func Scan(root string) (*Tree, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}

	var matcher *ignore.GitIgnore
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(absRoot, ".gitignore")); err == nil {
		matcher = gi
	}

	tree := &Tree{
		Root: absRoot,
		Read: func(filePath string) ([]byte, error) {
			return os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(filePath)))
		},
	}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}

		variant, ok := registry.VariantForPath(rel)
		if !ok {
			return nil
		}

		tree.Files = append(tree.Files, File{Path: rel, Variant: variant.Name()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return tree, nil
}
