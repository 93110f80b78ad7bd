package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	ShipEngine  ShipEngineConfig  `mapstructure:"shipengine"`
	Filter      FilterConfig      `mapstructure:"filter"`
	Output      OutputConfig      `mapstructure:"output"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency"`
}

// ShipEngineConfig holds ShipEngine API connection details
type ShipEngineConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Retries        int           `mapstructure:"retries"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	PageSize       int           `mapstructure:"page_size"`
	// RequestsPerSecond throttles outgoing requests. Zero disables it.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// FilterConfig contains the default filter and named presets
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default_expression"`
	Presets           map[string]string `mapstructure:"presets"`
	CacheSize         int               `mapstructure:"cache_size"`
}

// OutputConfig controls how command results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// ConcurrencyConfig bounds parallel API calls made by a single command
type ConcurrencyConfig struct {
	MaxParallel int `mapstructure:"max_parallel"`
}

// Preset returns the expression for a named filter preset.
func (f FilterConfig) Preset(name string) (string, bool) {
	expr, ok := f.Presets[name]
	return expr, ok
}
