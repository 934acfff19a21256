// Package lint orchestrates frontmatter checking: it extracts frontmatter
// from documents, resolves the schema that applies to each one, dispatches
// to the matching validation backend, and collects results.
//
// Schema failures never abort a run. Every problem, from a missing schema
// file to a single wrong property, becomes a coded error on the document's
// [Result], so batch output stays machine-readable.
package lint

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hatappo/frontmatter-lint/internal/fileutil"
	"github.com/hatappo/frontmatter-lint/internal/logging"
	"github.com/hatappo/frontmatter-lint/internal/validator"
	"github.com/hatappo/frontmatter-lint/pkg/frontmatter"
)

// Options control how strictly documents are checked.
type Options struct {
	// AllowExtraProps accepts mapping keys that the schema does not
	// declare. Off by default: extras are errors.
	AllowExtraProps bool
	// RequireSchema makes a document without any resolvable schema an
	// error instead of a skip.
	RequireSchema bool
	// NoAutoSchema disables the schema.json/schema.yaml directory
	// convention; only explicit directives bind schemas.
	NoAutoSchema bool
}

// Result is the outcome for one document.
type Result struct {
	Target string            `json:"target"`
	Valid  bool              `json:"valid"`
	Errors []validator.Error `json:"errors,omitempty"`
}

// Linter checks documents against their schemas. It is safe for
// concurrent use; the schema cache is shared across all lints.
type Linter struct {
	baseDir string
	jobs    int
	log     *slog.Logger
	opts    Options
	cache   *sourceCache
}

// Option configures a Linter.
type Option func(*Linter)

// New creates a Linter with the given options.
func New(opts ...Option) *Linter {
	l := &Linter{
		baseDir: ".",
		jobs:    runtime.NumCPU(),
		log:     logging.NewDiscard(),
		cache:   newSourceCache(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithBaseDir sets the directory that relative document paths resolve
// against.
func WithBaseDir(dir string) Option {
	return func(l *Linter) {
		l.baseDir = dir
	}
}

// WithOptions sets the strictness options.
func WithOptions(opts Options) Option {
	return func(l *Linter) {
		l.opts = opts
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Linter) {
		l.log = log
	}
}

// WithJobs bounds the concurrency of batch lints.
func WithJobs(n int) Option {
	return func(l *Linter) {
		if n > 0 {
			l.jobs = n
		}
	}
}

// LintContent checks content as the document named target. The target
// names the document in results and anchors relative schema paths, so
// stdin can be linted as if it lived at a real location.
func (l *Linter) LintContent(target string, content []byte) Result {
	doc, err := frontmatter.Extract(content)
	if err != nil {
		return Result{Target: target, Errors: []validator.Error{{
			Code:    validator.CodeInvalidFrontmatter,
			Message: "invalid frontmatter: " + err.Error(),
		}}}
	}
	if doc == nil {
		l.log.Debug("no frontmatter", "target", target)
		return Result{Target: target, Valid: true}
	}

	backend, failure := l.resolve(filepath.Dir(l.abs(target)), doc.Directive)
	if failure != nil {
		return Result{Target: target, Errors: []validator.Error{*failure}}
	}
	if backend == nil {
		l.log.Debug("no schema applies", "target", target)
		return Result{Target: target, Valid: true}
	}

	errs := backend.Validate(doc.Parse())
	l.log.Debug("checked", "target", target, "format", doc.Format, "errors", len(errs))
	return Result{Target: target, Valid: len(errs) == 0, Errors: errs}
}

// LintFile reads and checks one document. An unreadable file reports
// FILE_NOT_FOUND instead of failing the run.
func (l *Linter) LintFile(path string) Result {
	data, err := fileutil.ReadFileWithLimit(l.abs(path))
	if err != nil {
		msg := "cannot read file: " + path
		switch {
		case errors.Is(err, os.ErrNotExist):
			msg = "file not found: " + path
		case errors.Is(err, fileutil.ErrFileTooLarge):
			msg = "file too large: " + path
		}
		return Result{Target: path, Errors: []validator.Error{{
			Code:    validator.CodeFileNotFound,
			Message: msg,
		}}}
	}
	return l.LintContent(path, data)
}

// LintAll checks documents concurrently and returns results in input
// order. The only error it returns is ctx's, when the run is canceled.
func (l *Linter) LintAll(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(l.jobs)
	for i, path := range paths {
		i, path := i, path // per-iteration copies; the go directive is below 1.22
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = l.LintFile(path)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// InvalidateCache drops cached schemas so the next lint reloads them.
// Watch mode calls this between passes.
func (l *Linter) InvalidateCache() {
	l.cache.reset()
}

func (l *Linter) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.baseDir, path)
}
