package config

import "flag"

// flagToSource maps flag names to source field names.
var flagToSource = map[string]string{
	"base-url":       "base_url",
	"timeout":        "request_timeout_seconds",
	"user-agent":     "user_agent",
	"validate":       "validate_responses",
	"default-user":   "default_user",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines and parses CLI flags on fs, using the values loaded so
// far as defaults. If sources is non-nil, explicitly set flags are tracked.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todoboard", flag.ContinueOnError)
	}

	// API
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "API base URL")
	fs.IntVar(&cfg.RequestTimeoutSeconds, "timeout", cfg.RequestTimeoutSeconds, "Per-request timeout in seconds (0 = transport default)")
	fs.StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "User-Agent header for API requests")
	fs.BoolVar(&cfg.ValidateResponses, "validate", cfg.ValidateResponses, "Validate API responses against the bundled JSON schemas")

	// Board
	fs.IntVar(&cfg.DefaultUser, "default-user", cfg.DefaultUser, "User preselected for new todos")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagToSource[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
