// Package logging provides structured logging for the frontmatter-lint CLI
// using slog.
//
// Two renderings are supported: a compact text format for terminals,
// colorized when the output supports it, and line-delimited JSON for log
// files and machine consumption. Loggers are plain [log/slog.Logger]
// values; the package only supplies handlers and constructors.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelDebug,
//		Format: logging.FormatText,
//	})
//	logger.Info("linting", "path", "posts/hello.md")
//
// # Multiple Destinations
//
// Combine handlers with [NewMultiHandler] to log to the terminal and a
// file at once:
//
//	h := logging.NewMultiHandler(termHandler, fileHandler)
//	logger := slog.New(h)
//
// # Testing
//
// [ForTest] returns a debug-level logger routed through t.Log, so output
// surfaces only for failing tests or under -v:
//
//	logger := logging.ForTest(t)
package logging
