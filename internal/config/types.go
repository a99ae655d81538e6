package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultBaseURL           = "https://jsonplaceholder.typicode.com"
	DefaultLogDir            = "~/.todoboard"
	DefaultUser              = 1
	DefaultValidateResponses = true
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "json"
	DefaultLogTimestamps     = true
)

// Config holds the full configuration for todoboard.
type Config struct {
	// API
	BaseURL               string `toml:"base_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	UserAgent             string `toml:"user_agent"`
	ValidateResponses     bool   `toml:"validate_responses"`

	// Board
	DefaultUser int `toml:"default_user"` // Owner preselected for new todos

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// RequestTimeout returns the per-request timeout. Zero means the transport default.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate checks field values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url: %q must be an absolute http(s) URL", c.BaseURL)
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds: must be >= 0, got %d", c.RequestTimeoutSeconds)
	}
	if c.DefaultUser < 1 {
		return fmt.Errorf("default_user: must be >= 1, got %d", c.DefaultUser)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: invalid value %q, must be one of: debug, info, warn, error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format: invalid value %q, must be one of: text, json, logfmt", c.LogFormat)
	}
	return nil
}
