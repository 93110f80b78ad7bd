package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/s0up4200/shipctl/shipengine"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SHIPCTL_SHIPENGINE_API_KEY.
const EnvPrefix = "SHIPCTL"

// Load loads the configuration from file and environment.
// A missing config file is not an error when the environment provides an API key.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".shipctl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/shipctl/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		if v.GetString("shipengine.api_key") == "" {
			return nil, fmt.Errorf("config file not found and %s_SHIPENGINE_API_KEY is not set: %w", EnvPrefix, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// ShipEngine defaults
	v.SetDefault("shipengine.api_key", "")
	v.SetDefault("shipengine.base_url", shipengine.DefaultBaseURL)
	v.SetDefault("shipengine.retries", shipengine.DefaultRetries)
	v.SetDefault("shipengine.timeout", shipengine.DefaultTimeout)
	v.SetDefault("shipengine.connect_timeout", shipengine.DefaultConnectTimeout)
	v.SetDefault("shipengine.page_size", shipengine.DefaultPageSize)
	v.SetDefault("shipengine.requests_per_second", 0)

	// Filter defaults
	v.SetDefault("filter.default_expression", "")
	v.SetDefault("filter.cache_size", 100)

	// Output defaults
	v.SetDefault("output.format", "table")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Concurrency defaults
	v.SetDefault("concurrency.max_parallel", 4)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.ShipEngine.APIKey == "" || cfg.ShipEngine.APIKey == "your-api-key-here" {
		return fmt.Errorf("shipengine.api_key must be set to a valid API key")
	}

	if cfg.ShipEngine.BaseURL == "" {
		return fmt.Errorf("shipengine.base_url is required")
	}

	if cfg.ShipEngine.RequestsPerSecond < 0 {
		return fmt.Errorf("shipengine.requests_per_second must be zero or greater")
	}

	// Numeric ranges match the SDK's own checks
	if _, err := cfg.ShipEngine.Configuration(); err != nil {
		return fmt.Errorf("shipengine: %w", err)
	}

	for name, expr := range cfg.Filter.Presets {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("filter preset %q has an empty expression", name)
		}
	}

	if cfg.Filter.CacheSize < 0 {
		return fmt.Errorf("filter.cache_size must be zero or greater")
	}

	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.Concurrency.MaxParallel < 1 {
		return fmt.Errorf("concurrency.max_parallel must be at least 1")
	}

	return nil
}

// Configuration converts the section into an SDK configuration.
func (c ShipEngineConfig) Configuration() (shipengine.Configuration, error) {
	return shipengine.NewConfiguration(c.APIKey, shipengine.Overrides{
		BaseURL:        shipengine.Some(c.BaseURL),
		Retries:        shipengine.Some(c.Retries),
		Timeout:        shipengine.Some(c.Timeout),
		ConnectTimeout: shipengine.Some(c.ConnectTimeout),
		PageSize:       shipengine.Some(c.PageSize),
	})
}
