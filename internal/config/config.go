package config

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/hatappo/frontmatter-lint/internal/paths"
)

// Config holds the application configuration.
type Config struct {
	// AllowExtraProps permits object properties not declared by the schema.
	AllowExtraProps bool `mapstructure:"allow_extra_props" yaml:"allow_extra_props"`

	// RequireSchema fails files that have frontmatter but no schema.
	RequireSchema bool `mapstructure:"require_schema" yaml:"require_schema"`

	// NoAutoSchema disables schema auto-detection next to the target file.
	NoAutoSchema bool `mapstructure:"no_auto_schema" yaml:"no_auto_schema"`

	// Extensions lists the file extensions scanned when a directory is given.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Jobs caps concurrent lint workers. Zero means one per CPU.
	Jobs int `mapstructure:"jobs" yaml:"jobs"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Extensions: []string{".md", ".markdown"},
	}
}

// Init configures viper's search paths, environment binding, and defaults.
// Call once before Load.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("FRONTMATTER_LINT")
	viper.AutomaticEnv()

	// AutomaticEnv only surfaces keys viper already knows about, so every
	// key needs a default for env overrides to reach Unmarshal.
	viper.SetDefault("allow_extra_props", false)
	viper.SetDefault("require_schema", false)
	viper.SetDefault("no_auto_schema", false)
	viper.SetDefault("extensions", []string{".md", ".markdown"})
	viper.SetDefault("jobs", 0)
}

// Load reads the configuration. A non-empty path names an explicit config
// file, with a leading ~ expanded, and missing files are an error; with an
// empty path the search locations from Init are consulted and a missing
// file is fine.
func Load(path string) (*Config, error) {
	if path != "" {
		resolved, err := paths.ResolveHome(path)
		if err != nil {
			return nil, errors.Wrap(err, "resolving config path")
		}
		viper.SetConfigFile(resolved)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config")
		}
	}

	cfg := Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
