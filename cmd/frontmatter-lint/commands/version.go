package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	buildinfo "github.com/hatappo/frontmatter-lint/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of frontmatter-lint.`,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "frontmatter-lint version %s\n", buildinfo.Version)
		fmt.Fprintf(out, "  commit: %s\n", buildinfo.Commit)
		fmt.Fprintf(out, "  built:  %s\n", buildinfo.Date)
	},
}
