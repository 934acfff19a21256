// Package main is the entry point for the frontmatter-lint CLI.
package main

import (
	"fmt"
	"os"

	"github.com/hatappo/frontmatter-lint/cmd/frontmatter-lint/commands"
	"github.com/hatappo/frontmatter-lint/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(errors.ExitUser)
}
