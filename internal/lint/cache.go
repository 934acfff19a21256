package lint

import (
	"sync"

	"github.com/hatappo/frontmatter-lint/internal/schema"
	"github.com/hatappo/frontmatter-lint/internal/schema/jsonschema"
	"github.com/hatappo/frontmatter-lint/internal/schema/rules"
	"github.com/hatappo/frontmatter-lint/internal/validator"
)

// cachedSource is the load outcome for one schema file. Load failures are
// cached too, so a broken schema is reported once per file read rather than
// re-parsed for every document that references it.
type cachedSource struct {
	json    *jsonschema.Schema
	types   *schema.File
	rules   *rules.File
	failure *validator.Error
}

// sourceCache memoizes schema loads by absolute file path. Batch lints hit
// it from many goroutines.
type sourceCache struct {
	mu      sync.Mutex
	sources map[string]*cachedSource
}

func newSourceCache() *sourceCache {
	return &sourceCache{sources: make(map[string]*cachedSource)}
}

// load returns the cached source for path, calling fn to load it on the
// first request.
func (c *sourceCache) load(path string, fn func(string) *cachedSource) *cachedSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	if src, ok := c.sources[path]; ok {
		return src
	}
	src := fn(path)
	c.sources[path] = src
	return src
}

// reset drops all cached sources. Watch mode calls it before each pass so
// edited schema files are reloaded.
func (c *sourceCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = make(map[string]*cachedSource)
}
