package graph

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codecontexthq/contextgraph/ccg"
	"github.com/codecontexthq/contextgraph/cmd/graph/formatters"
	"github.com/codecontexthq/contextgraph/source"
)

type graphOptions struct {
	repoPath    string
	format      string
	workers     int
	diagnostics bool
	verbose     bool
}

// Cmd represents the graph command.
var Cmd = NewCommand()

// NewCommand returns a new graph command instance.
func NewCommand() *cobra.Command {
	opts := &graphOptions{}

	cmd := &cobra.Command{
		Use:   "graph [path]",
		Short: "Build a code context graph for a repository",
		Long: `Build a code context graph for a repository.

Scans the repository for supported source files, extracts modules, classes
and functions, and resolves imports, calls and inheritance into typed edges.

Examples:
  ccg graph                         # current directory
  ccg graph ./backend               # specific directory
  ccg graph -f json ./backend       # JSON output
  ccg graph -f dot . | dot -Tsvg    # render with Graphviz
  ccg graph -d .                    # include diagnostics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.repoPath = args[0]
			}
			return runGraph(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatters.OutputFormatText.String(),
		fmt.Sprintf("Output format (%s, %s, %s)", formatters.OutputFormatText, formatters.OutputFormatJSON, formatters.OutputFormatDOT))
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of parallel workers (default: number of CPUs)")
	cmd.Flags().BoolVarP(&opts.diagnostics, "diagnostics", "d", false, "Include diagnostics in the output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log pipeline progress to stderr")

	return cmd
}

func runGraph(cmd *cobra.Command, opts *graphOptions) error {
	repoPath := opts.repoPath
	if repoPath == "" {
		repoPath = "."
	}

	absRepoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return fmt.Errorf("failed to resolve repo path: %w", err)
	}

	formatter, err := formatters.NewFormatter(opts.format)
	if err != nil {
		return err
	}

	tree, err := source.Scan(absRepoPath)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", absRepoPath, err)
	}
	if len(tree.Files) == 0 {
		return fmt.Errorf("no supported source files found in %s", absRepoPath)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	buildOpts := []ccg.BuildOption{ccg.WithLogger(logger)}
	if opts.workers > 0 {
		buildOpts = append(buildOpts, ccg.WithWorkers(opts.workers))
	}

	store, err := ccg.Build(cmd.Context(), tree, buildOpts...)
	if err != nil {
		return fmt.Errorf("failed to build context graph: %w", err)
	}

	output, err := formatter.Format(store, formatters.FormatOptions{
		Label:       filepath.Base(absRepoPath),
		Diagnostics: opts.diagnostics,
	})
	if err != nil {
		return fmt.Errorf("failed to format graph: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}
