// Package config loads CLI configuration from callhint.yml and the
// environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the callhint CLI configuration
type Config struct {
	NoColor  bool        `mapstructure:"no_color"`
	Strategy string      `mapstructure:"strategy"`
	Serve    ServeConfig `mapstructure:"serve"`
}

// ServeConfig configures the introspection server
type ServeConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Load loads the configuration from callhint.yml or callhint.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("no_color", false)
	v.SetDefault("strategy", "types")
	v.SetDefault("serve.host", "localhost")
	v.SetDefault("serve.port", 8410)

	v.SetConfigName("callhint")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support (CALLHINT_STRATEGY, ...)
	v.SetEnvPrefix("callhint")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validate checks configuration values
func validate(cfg *Config) error {
	if cfg.Strategy != "types" && cfg.Strategy != "values" {
		return fmt.Errorf("invalid strategy %q: must be \"types\" or \"values\"", cfg.Strategy)
	}
	if cfg.Serve.Port < 0 || cfg.Serve.Port > 65535 {
		return fmt.Errorf("invalid serve port: %d", cfg.Serve.Port)
	}
	return nil
}
