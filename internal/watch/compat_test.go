package watch

import (
	"context"
	"testing"
)

// testContext stands in for t.Context, which requires Go 1.24; this module
// builds with Go 1.21. The context is canceled when the test ends.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
