package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API         APIConfig         `mapstructure:"api"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Filter      FilterConfig      `mapstructure:"filter"`
	Display     DisplayConfig     `mapstructure:"display"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// APIConfig holds the movie API connection details
type APIConfig struct {
	URL       string        `mapstructure:"url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// CredentialsConfig controls where tokens are kept between runs
type CredentialsConfig struct {
	// Path of the credential database. Empty keeps tokens in memory only.
	Path string `mapstructure:"path"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// DisplayConfig contains output settings
type DisplayConfig struct {
	ShowDetails bool `mapstructure:"show_details"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	// File receives logs in addition to stderr when set, rotated by size
	File string `mapstructure:"file"`
}
