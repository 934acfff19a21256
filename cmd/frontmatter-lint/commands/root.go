// Package commands implements the CLI commands for frontmatter-lint.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	buildinfo "github.com/hatappo/frontmatter-lint/cmd"
	"github.com/hatappo/frontmatter-lint/internal/config"
	"github.com/hatappo/frontmatter-lint/internal/errors"
	"github.com/hatappo/frontmatter-lint/internal/logging"
	"github.com/hatappo/frontmatter-lint/internal/paths"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// cfg is the loaded configuration, populated by initConfig.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to a rotated JSON file (e.g. "+paths.DefaultLogFile()+")")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: config.yaml in . or the XDG config dir)")

	rootCmd.Version = buildinfo.Version
	rootCmd.SetVersionTemplate("frontmatter-lint version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configFile)
	if cfg == nil {
		cfg = config.Default()
	}
}

// currentConfig returns the loaded configuration, falling back to
// defaults when initConfig has not run.
func currentConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "frontmatter-lint",
	Short: "Validate frontmatter in Markdown documents",
	Long: `frontmatter-lint validates YAML and TOML frontmatter in Markdown
documents against schemas.

Schemas come from three sources: JSON Schema files, YAML type definition
documents, and YAML rule sets. A document names its schema with a
frontmatter-schema directive, or a schema file next to the document is
picked up automatically.`,
	Example: `  # Lint files and directories
  frontmatter-lint lint docs/ README.md

  # Lint editor buffer content from stdin
  cat draft.md | frontmatter-lint lint --stdin --stdin-path docs/draft.md

  # Re-lint on changes
  frontmatter-lint lint docs/ --watch

  # Inspect schemas
  frontmatter-lint schema list docs/
  frontmatter-lint schema show docs/schema.yaml post`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("FRONTMATTER_LINT_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		// File output uses JSON format with size-based rotation.
		handlers = append(handlers, slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces configuration load failures once logging is up.
func checkConfig(cmd *cobra.Command) error {
	// Skip for commands that never read configuration
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
