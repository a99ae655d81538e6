package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TODOBOARD_BASE_URL"); v != "" {
		cfg.BaseURL = v
		set("base_url")
	}
	if v := os.Getenv("TODOBOARD_TIMEOUT"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TODOBOARD_TIMEOUT: %w", err)
		}
		cfg.RequestTimeoutSeconds = i
		set("request_timeout_seconds")
	}
	if v := os.Getenv("TODOBOARD_USER_AGENT"); v != "" {
		cfg.UserAgent = v
		set("user_agent")
	}
	if v := os.Getenv("TODOBOARD_VALIDATE"); v != "" {
		cfg.ValidateResponses = boolFromString(v)
		set("validate_responses")
	}
	if v := os.Getenv("TODOBOARD_DEFAULT_USER"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TODOBOARD_DEFAULT_USER: %w", err)
		}
		cfg.DefaultUser = i
		set("default_user")
	}

	// Logging configuration
	if v := os.Getenv("TODOBOARD_LOG_DIR"); v != "" {
		cfg.LogDir = v
		set("log_dir")
	}
	if v := os.Getenv("TODOBOARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TODOBOARD_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TODOBOARD_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("TODOBOARD_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
	return nil
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
