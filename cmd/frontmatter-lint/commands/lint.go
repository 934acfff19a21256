package commands

import (
	"context"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hatappo/frontmatter-lint/internal/errors"
	"github.com/hatappo/frontmatter-lint/internal/lint"
	"github.com/hatappo/frontmatter-lint/internal/logging"
	"github.com/hatappo/frontmatter-lint/internal/watch"
)

var (
	lintAllowExtra    bool
	lintRequireSchema bool
	lintNoAutoSchema  bool
	lintFormat        string
	lintJobs          int
	lintStdin         bool
	lintStdinPath     string
	lintWatch         bool
)

func init() {
	lintCmd.Flags().BoolVar(&lintAllowExtra, "allow-extra-props", false,
		"permit object properties the schema does not declare")
	lintCmd.Flags().BoolVar(&lintRequireSchema, "require-schema", false,
		"fail files that have frontmatter but no schema")
	lintCmd.Flags().BoolVar(&lintNoAutoSchema, "no-auto-schema", false,
		"disable schema auto-detection next to the target file")
	lintCmd.Flags().StringVar(&lintFormat, "format", "text",
		"output format: text, json, table")
	lintCmd.Flags().IntVar(&lintJobs, "jobs", 0,
		"max concurrent workers (default: one per CPU)")
	lintCmd.Flags().BoolVar(&lintStdin, "stdin", false,
		"read content from stdin instead of files")
	lintCmd.Flags().StringVar(&lintStdinPath, "stdin-path", "",
		"logical path for stdin content, used for schema resolution")
	lintCmd.Flags().BoolVar(&lintWatch, "watch", false,
		"watch files and re-lint on changes")
	rootCmd.AddCommand(lintCmd)
}

var lintCmd = &cobra.Command{
	Use:   "lint [path...]",
	Short: "Validate frontmatter against schemas",
	Long: `Validate frontmatter in Markdown documents against schemas.

Directories are walked for files matching the configured extensions
(default: .md, .markdown). A document's schema comes from its
frontmatter-schema directive, or from a schema.json/schema.yaml/schema.yml
file next to the document.

Exit codes:
  0 - All files are valid
  1 - At least one file is invalid
  2 - System error`,
	Example: `  # Lint a directory tree
  frontmatter-lint lint docs/

  # Lint specific files
  frontmatter-lint lint README.md docs/post.md

  # Machine-readable output
  frontmatter-lint lint docs/ --format json

  # Editor integration: lint a buffer as if it were saved
  cat buffer.md | frontmatter-lint lint --stdin --stdin-path docs/post.md

  # Re-lint whenever files change
  frontmatter-lint lint docs/ --watch`,
	Args: cobra.ArbitraryArgs,
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	format := lint.Format(lintFormat)
	switch format {
	case lint.FormatText, lint.FormatJSON, lint.FormatTable:
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", lintFormat),
			"Valid formats: text, json, table")
	}

	if lintStdin && lintWatch {
		return errors.NewUserError(nil, "cannot use --stdin and --watch together")
	}
	if lintStdinPath != "" && !lintStdin {
		return errors.NewUserError(nil, "--stdin-path requires --stdin")
	}

	ctx := cmd.Context()
	linter := lint.New(
		lint.WithOptions(lintOptions(cmd)),
		lint.WithLogger(logging.FromContext(ctx)),
		lint.WithJobs(jobCount(cmd)),
	)
	reporter := lint.NewReporter(cmd.OutOrStdout(), format)

	if lintStdin {
		return runLintStdin(cmd, linter, reporter)
	}

	if len(args) == 0 {
		return errors.NewUserError(errors.ErrNoInput, "Pass at least one file or directory")
	}

	if lintWatch {
		return runLintWatch(cmd, linter, reporter, args)
	}

	paths, err := expandPaths(args)
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if len(paths) == 0 {
		return errors.NewUserError(errors.ErrNoInput,
			"No files matched the configured extensions: "+strings.Join(currentConfig().Extensions, ", "))
	}

	results, err := linter.LintAll(ctx, paths)
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := reporter.Report(results); err != nil {
		return errors.NewSystemError(err, "")
	}
	if lint.Invalid(results) > 0 {
		return errors.NewExitError(errors.ErrLintFailed, errors.ExitUser)
	}
	return nil
}

func runLintStdin(cmd *cobra.Command, linter *lint.Linter, reporter *lint.Reporter) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "reading stdin"), "")
	}

	target := lintStdinPath
	if target == "" {
		target = "<stdin>"
	}

	result := linter.LintContent(target, content)
	if err := reporter.Report([]lint.Result{result}); err != nil {
		return errors.NewSystemError(err, "")
	}
	if !result.Valid {
		return errors.NewExitError(errors.ErrLintFailed, errors.ExitUser)
	}
	return nil
}

func runLintWatch(cmd *cobra.Command, linter *lint.Linter, reporter *lint.Reporter, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.FromContext(cmd.Context())

	// Paths are re-expanded every pass so new files are picked up, and the
	// schema cache is dropped so edited schemas take effect.
	pass := func(ctx context.Context) {
		linter.InvalidateCache()
		paths, err := expandPaths(args)
		if err != nil {
			log.Error("expanding paths", "error", err)
			return
		}
		results, err := linter.LintAll(ctx, paths)
		if err != nil {
			return
		}
		_ = reporter.Report(results)
	}

	pass(ctx)

	exts := currentConfig().Extensions
	watcher, err := watch.New(
		watch.WithLogger(log),
		watch.WithFilter(func(path string) bool {
			return slices.Contains(exts, filepath.Ext(path)) || isSchemaFile(path)
		}),
	)
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	defer watcher.Close()

	for _, arg := range args {
		root := arg
		if info, err := os.Stat(arg); err != nil || !info.IsDir() {
			root = filepath.Dir(arg)
		}
		if err := watcher.Add(root); err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	log.Info("watching for changes", "paths", strings.Join(args, ", "))

	if err := watcher.Run(ctx, pass); err != nil && !errors.Is(err, context.Canceled) {
		return errors.NewSystemError(err, "")
	}
	return nil
}

// lintOptions merges the config file with any flags set on the command line.
func lintOptions(cmd *cobra.Command) lint.Options {
	conf := currentConfig()
	opts := lint.Options{
		AllowExtraProps: conf.AllowExtraProps,
		RequireSchema:   conf.RequireSchema,
		NoAutoSchema:    conf.NoAutoSchema,
	}
	if cmd.Flags().Changed("allow-extra-props") {
		opts.AllowExtraProps = lintAllowExtra
	}
	if cmd.Flags().Changed("require-schema") {
		opts.RequireSchema = lintRequireSchema
	}
	if cmd.Flags().Changed("no-auto-schema") {
		opts.NoAutoSchema = lintNoAutoSchema
	}
	return opts
}

func jobCount(cmd *cobra.Command) int {
	if cmd.Flags().Changed("jobs") {
		return lintJobs
	}
	return currentConfig().Jobs
}

// expandPaths resolves command-line arguments to lint targets. Directories
// are walked for files matching the configured extensions; explicit file
// paths are kept as-is so missing files surface in the report.
func expandPaths(args []string) ([]string, error) {
	exts := currentConfig().Extensions

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return fs.SkipDir
				}
				return nil
			}
			if slices.Contains(exts, filepath.Ext(path)) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// isSchemaFile reports whether a change to path can affect schema
// resolution. Schema edits must re-trigger a pass since cached sources
// are invalidated between runs.
func isSchemaFile(path string) bool {
	switch filepath.Ext(path) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
