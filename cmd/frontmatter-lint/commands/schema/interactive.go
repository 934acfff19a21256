package schema

import (
	"fmt"
	"io"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/hatappo/frontmatter-lint/internal/errors"
)

func runInteractiveList(w io.Writer, entries []entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No schema documents found.")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		entries,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", entries[i].Path, entries[i].Kind)
		},
		fuzzyfinder.WithPreviewWindow(func(i, width, height int) string {
			if i == -1 {
				return ""
			}
			return preview(entries[i])
		}),
	)

	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}

	e := entries[idx]
	fmt.Fprintf(w, "Selected: %s (%s)\n", e.Path, e.Kind)
	if len(e.Names) > 0 {
		fmt.Fprintf(w, "Definitions: %s\n", strings.Join(e.Names, ", "))
	}
	return nil
}

// preview renders the resolved definitions for the finder's preview pane.
func preview(e entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Path: %s\nKind: %s\n", e.Path, e.Kind)

	text, err := describe(e.Path, "")
	if err != nil {
		if len(e.Names) > 0 {
			fmt.Fprintf(&b, "\nDefinitions: %s\n", strings.Join(e.Names, ", "))
		}
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(text)
	return b.String()
}
