package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is backed by a terminal. Anything exposing an
// Fd method is probed, which covers os.File and common wrappers.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colors should be written to w. It is
// false when w is not a terminal, when NO_COLOR is set, or when TERM is
// "dumb".
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if !isTTY {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
