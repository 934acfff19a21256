package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir stands in for t.Chdir, which requires Go 1.24; this module builds
// with Go 1.21. It enters dir and restores the working directory when the
// test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(dir) {
		dir, err = os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}
