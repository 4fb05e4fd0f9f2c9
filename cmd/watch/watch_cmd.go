package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
)

type watchOptions struct {
	repoPath string
	format   string
	workers  int
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch for file changes and rebuild the context graph",
		Long: `Watch a repository for source file changes and rebuild the code context
graph on every change, printing the result to stdout.

Examples:
  ccg watch
  ccg watch ./backend
  ccg watch -f dot .`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.repoPath = args[0]
			}
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format (text, json, dot)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of parallel workers (default: number of CPUs)")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	repoPath := opts.repoPath
	if repoPath == "" {
		repoPath = "."
	}

	absRepoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return fmt.Errorf("failed to resolve repo path: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes. Press Ctrl+C to stop.\n", absRepoPath)

	// Build once before entering the watch loop.
	rebuildGraph(cmd, absRepoPath, opts)

	return watchAndRebuild(ctx, cmd, absRepoPath, opts)
}
