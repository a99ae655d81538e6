package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todoboard configuration file
# Values can be overridden by environment variables (TODOBOARD_*) or CLI flags

# Demonstration API root
base_url = "https://jsonplaceholder.typicode.com"

# Per-request timeout in seconds (0 = transport default)
request_timeout_seconds = 0

# User-Agent header sent with every request
# user_agent = "todoboard"

# Validate API responses against the bundled JSON schemas
validate_responses = true

# User preselected as the owner of new todos
default_user = 1

# Log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.todoboard"

# Diagnostic log settings
log_level = "info"      # debug, info, warn, error
log_format = "json"     # text, json, logfmt
log_timestamps = true
log_caller = false
`
}
