package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{"todoboard.toml", ".todoboard.toml"}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.todoboard/todoboard.toml first, then falls back to OS-specific
// config directories.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, ".todoboard", "todoboard.toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, "todoboard", "todoboard.toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		// On Linux/BSD, respect XDG_CONFIG_HOME or use ~/.config
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.BaseURL = DefaultBaseURL
	cfg.RequestTimeoutSeconds = 0
	cfg.ValidateResponses = DefaultValidateResponses
	cfg.DefaultUser = DefaultUser
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = DefaultLogTimestamps
	cfg.LogCaller = false
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"base_url",
		"request_timeout_seconds",
		"user_agent",
		"validate_responses",
		"default_user",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// GetConfigFile returns the highest-priority config file that was read.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}

// Entry is one effective configuration value and where it came from.
type Entry struct {
	Key    string
	Value  string
	Source ConfigSource
}

// Entries returns the effective values in field order.
func (cws *ConfigWithSources) Entries() []Entry {
	c := cws.Config
	values := map[string]string{
		"base_url":                c.BaseURL,
		"request_timeout_seconds": strconv.Itoa(c.RequestTimeoutSeconds),
		"user_agent":              c.UserAgent,
		"validate_responses":      strconv.FormatBool(c.ValidateResponses),
		"default_user":            strconv.Itoa(c.DefaultUser),
		"log_dir":                 c.LogDir,
		"log_level":               c.LogLevel,
		"log_format":              c.LogFormat,
		"log_timestamps":          strconv.FormatBool(c.LogTimestamps),
		"log_caller":              strconv.FormatBool(c.LogCaller),
	}

	fields := configFields()
	entries := make([]Entry, 0, len(fields))
	for _, key := range fields {
		source := cws.Sources[key]
		if source == "" {
			source = SourceDefault
		}
		entries = append(entries, Entry{Key: key, Value: values[key], Source: source})
	}
	return entries
}
