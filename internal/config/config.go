// Package config loads and validates the knobs this core consumes.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings consumed by request resolution.
type Config struct {
	// Schema is the database schema requests resolve against.
	Schema string `mapstructure:"schema"`
	// MaxRows caps every pagination window. Zero disables the cap.
	MaxRows int `mapstructure:"max_rows"`
	// DefaultLimit is the fallback list limit for unbounded ranges.
	DefaultLimit int `mapstructure:"default_limit"`
	// MaxEmbedDepth bounds embedding nesting, root included.
	MaxEmbedDepth int `mapstructure:"max_embed_depth"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration with the following precedence: environment
// variables (PGRST_ prefix), an optional config file, then defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	v.SetEnvPrefix("PGRST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if result := cfg.Validate(); result.HasErrors() {
		return nil, fmt.Errorf("invalid configuration: %s", result.Error())
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("schema", "public")
	v.SetDefault("max_rows", 0)
	v.SetDefault("default_limit", 100)
	v.SetDefault("max_embed_depth", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
