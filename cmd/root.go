package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/codecontexthq/contextgraph/cmd/graph"
	"github.com/codecontexthq/contextgraph/cmd/languages"
	"github.com/codecontexthq/contextgraph/cmd/watch"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ccg",
	Short: "Build cross-file code context graphs for your codebase",
	Long: `ccg builds a code context graph for a repository: modules, classes and
functions connected by import, call and inheritance edges. It supports
Python, JavaScript and TypeScript files.

Use 'ccg --help' to see all available commands, or 'ccg <command> --help'
for detailed information about a specific command.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(graph.Cmd)
	rootCmd.AddCommand(languages.Cmd)
	rootCmd.AddCommand(watch.Cmd)

	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["buildDate"] = buildDate
	rootCmd.Annotations["commit"] = commit

	rootCmd.Version = version

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)
}
