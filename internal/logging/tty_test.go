package logging

import (
	"bytes"
	"os"
	"testing"
)

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	if v, ok := os.LookupEnv(key); ok {
		os.Unsetenv(key)
		t.Cleanup(func() { os.Setenv(key, v) })
	}
}

func TestSupportsColor(t *testing.T) {
	tests := []struct {
		name    string
		noColor bool
		term    string
		isTTY   bool
		want    bool
	}{
		{name: "tty with clean env", isTTY: true, want: true},
		{name: "not a tty", isTTY: false, want: false},
		{name: "NO_COLOR set", noColor: true, isTTY: true, want: false},
		{name: "TERM=dumb", term: "dumb", isTTY: true, want: false},
		{name: "TERM=xterm", term: "xterm", isTTY: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetenv(t, "NO_COLOR")
			unsetenv(t, "TERM")
			if tt.noColor {
				t.Setenv("NO_COLOR", "1")
			}
			if tt.term != "" {
				t.Setenv("TERM", tt.term)
			}
			if got := supportsColor(tt.isTTY); got != tt.want {
				t.Errorf("supportsColor(%v) = %v, want %v", tt.isTTY, got, tt.want)
			}
		})
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a bytes.Buffer is not a terminal")
	}
}
