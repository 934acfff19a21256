package commands

import (
	schemacmd "github.com/hatappo/frontmatter-lint/cmd/frontmatter-lint/commands/schema"
)

func init() {
	rootCmd.AddCommand(schemacmd.Cmd)
}
