package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/codecontexthq/contextgraph/ccg"
	"github.com/codecontexthq/contextgraph/ccg/registry"
	"github.com/codecontexthq/contextgraph/cmd/graph/formatters"
	"github.com/codecontexthq/contextgraph/source"
)

const debounceInterval = 300 * time.Millisecond

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"build":        true,
	"dist":         true,
	"__pycache__":  true,
	".venv":        true,
	".idea":        true,
	".vscode":      true,
}

func watchAndRebuild(ctx context.Context, cmd *cobra.Command, repoPath string, opts *watchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, repoPath); err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevantChange(event) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				rebuildGraph(cmd, repoPath, opts)
			})

			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}

func rebuildGraph(cmd *cobra.Command, repoPath string, opts *watchOptions) {
	formatter, err := formatters.NewFormatter(opts.format)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "graph rebuild error: %v\n", err)
		return
	}

	tree, err := source.Scan(repoPath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "graph rebuild error: %v\n", err)
		return
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	buildOpts := []ccg.BuildOption{ccg.WithLogger(logger)}
	if opts.workers > 0 {
		buildOpts = append(buildOpts, ccg.WithWorkers(opts.workers))
	}

	store, err := ccg.Build(cmd.Context(), tree, buildOpts...)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "graph rebuild error: %v\n", err)
		return
	}

	output, err := formatter.Format(store, formatters.FormatOptions{
		Label:       filepath.Base(repoPath),
		Diagnostics: true,
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "graph rebuild error: %v\n", err)
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
}

func isRelevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	_, ok := registry.VariantForExtension(filepath.Ext(event.Name))
	return ok
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func addIfDirectory(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if skippedDirs[filepath.Base(path)] {
		return
	}
	_ = watcher.Add(path)
}
