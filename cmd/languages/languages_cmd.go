package languages

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codecontexthq/contextgraph/ccg/registry"
)

// Cmd represents the languages command.
var Cmd = NewCommand()

// NewCommand returns a new languages command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List all supported languages and file extensions",
		Long: `List all supported programming languages and their mapped file extensions.

Examples:
  ccg languages`,
		RunE: runLanguages,
	}

	return cmd
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	for _, variant := range registry.Variants() {
		maturity := variant.Maturity()
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) - %s\n",
			maturity.Symbol(), variant.Name(), strings.Join(variant.Extensions(), ", "), maturity.DisplayName())
		if err != nil {
			return err
		}
	}

	return nil
}
