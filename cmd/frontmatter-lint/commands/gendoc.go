package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/hatappo/frontmatter-lint/internal/errors"
	"github.com/hatappo/frontmatter-lint/internal/paths"
)

var genDocDir string

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "docs",
		"output directory for generated pages")
	rootCmd.AddCommand(genDocCmd)
}

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown documentation for the CLI",
	Hidden: true,
	RunE:   runGenDoc,
}

func runGenDoc(cmd *cobra.Command, args []string) error {
	if err := paths.EnsureDir(genDocDir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	if err := doc.GenMarkdownTreeCustom(rootCmd, genDocDir, docFrontmatter, docLink); err != nil {
		return errors.Wrap(err, "generating markdown")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
	return nil
}

// docFrontmatter prepends Doks-compatible frontmatter to a generated page.
// The page for "frontmatter-lint_schema_list.md" is titled
// "frontmatter-lint schema list".
func docFrontmatter(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	title := strings.ReplaceAll(base, "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for the %s command"
draft: false
toc: true
---
`, title, title)
}

func docLink(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/reference/" + strings.ToLower(base) + "/"
}
