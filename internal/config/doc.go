// Package config loads application configuration from files and the
// environment.
//
// Configuration is resolved in order of precedence: command-line flags,
// FRONTMATTER_LINT_* environment variables, a config file, then built-in
// defaults. The config file is config.yaml in the current directory or
// in [paths.ConfigDir], unless an explicit path is given.
//
// # Usage
//
//	config.Init()
//	cfg, err := config.Load("")
//
// [Init] must run once before [Load]. Loaded values pass through
// [Config.Validate] before use.
package config
