// Package schema provides the schema command group for inspecting schema
// documents.
package schema

import "github.com/spf13/cobra"

// Cmd is the schema command that groups all schema-related subcommands.
var Cmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect schema documents",
	Long: `Inspect the schema documents that drive frontmatter validation.

Schema documents are JSON Schema files, YAML type definition documents,
and YAML rule sets. The subcommands discover them below a directory and
resolve individual definitions for display.`,
	Example: `  # List schema documents below the current directory
  frontmatter-lint schema list

  # Pick a definition interactively
  frontmatter-lint schema list docs/ --interactive

  # Show one definition in resolved form
  frontmatter-lint schema show docs/schema.yaml post

  See Also:
    frontmatter-lint schema list - List schema documents
    frontmatter-lint schema show - Show a schema definition`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
