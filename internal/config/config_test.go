// Package config tests configuration loading.
package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// isolate points HOME and the working directory at empty temp dirs and
// clears TODOBOARD_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "TODOBOARD_") {
			t.Setenv(name, "")
		}
	}
	work := t.TempDir()
	chdir(t, work)
	return home
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL: got %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.DefaultUser != DefaultUser {
		t.Errorf("DefaultUser: got %d, want %d", cfg.DefaultUser, DefaultUser)
	}
	if !cfg.ValidateResponses {
		t.Error("ValidateResponses: got false, want true")
	}
	if cfg.RequestTimeout() != 0 {
		t.Errorf("RequestTimeout: got %v, want 0", cfg.RequestTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TODOBOARD_BASE_URL", "http://localhost:3000")
	t.Setenv("TODOBOARD_TIMEOUT", "15")
	t.Setenv("TODOBOARD_VALIDATE", "off")
	t.Setenv("TODOBOARD_DEFAULT_USER", "4")
	t.Setenv("TODOBOARD_LOG_LEVEL", "debug")

	cfg := &Config{}
	setDefaults(cfg)
	sources := make(map[string]ConfigSource)
	if err := loadFromEnv(cfg, sources); err != nil {
		t.Fatalf("loadFromEnv: %v", err)
	}

	if cfg.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if cfg.RequestTimeoutSeconds != 15 {
		t.Errorf("RequestTimeoutSeconds: got %d, want 15", cfg.RequestTimeoutSeconds)
	}
	if cfg.ValidateResponses {
		t.Error("ValidateResponses: got true, want false")
	}
	if cfg.DefaultUser != 4 {
		t.Errorf("DefaultUser: got %d, want 4", cfg.DefaultUser)
	}
	if sources["base_url"] != SourceEnv || sources["log_level"] != SourceEnv {
		t.Errorf("sources: got %v", sources)
	}
}

func TestLoadFromEnvRejectsBadInt(t *testing.T) {
	isolate(t)
	t.Setenv("TODOBOARD_TIMEOUT", "soon")

	cfg := &Config{}
	setDefaults(cfg)
	if err := loadFromEnv(cfg, nil); err == nil {
		t.Error("expected error for non-numeric timeout")
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "todoboard.toml")

	content := []byte(`base_url = "https://example.test/api"
default_user = 3
log_format = "logfmt"
`)
	if err := os.WriteFile(configFile, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{}
	setDefaults(cfg)
	sources := make(map[string]ConfigSource)
	if err := loadConfigFile(cfg, configFile, sources, SourceProjFile); err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}

	if cfg.BaseURL != "https://example.test/api" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if cfg.DefaultUser != 3 {
		t.Errorf("DefaultUser: got %d, want 3", cfg.DefaultUser)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel should keep default, got %q", cfg.LogLevel)
	}
	if sources["default_user"] != SourceProjFile {
		t.Errorf("default_user source: got %q", sources["default_user"])
	}
	if _, ok := sources["log_level"]; ok {
		t.Error("log_level should not be tracked from the file")
	}
}

func TestLoadConfigFileUnknownKey(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "todoboard.toml")
	if err := os.WriteFile(configFile, []byte("max_iterations = 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &Config{}
	if err := loadConfigFile(cfg, configFile, nil, SourceProjFile); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadWithSources(t *testing.T) {
	home := isolate(t)

	userDir := filepath.Join(home, ".todoboard")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	userFile := filepath.Join(userDir, "todoboard.toml")
	if err := os.WriteFile(userFile, []byte("default_user = 2\nlog_level = \"warn\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("todoboard.toml", []byte("default_user = 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TODOBOARD_LOG_FORMAT", "text")

	cws, err := LoadWithSources(newFlagSet(), []string{"--timeout", "9", "stats"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	checks := []struct {
		field  string
		source ConfigSource
	}{
		{"base_url", SourceDefault},
		{"log_level", SourceUserFile},
		{"default_user", SourceProjFile},
		{"log_format", SourceEnv},
		{"request_timeout_seconds", SourceFlag},
	}
	for _, c := range checks {
		if got := cws.Sources[c.field]; got != c.source {
			t.Errorf("source of %s: got %q, want %q", c.field, got, c.source)
		}
	}

	if cfg.DefaultUser != 5 || cfg.LogLevel != "warn" || cfg.LogFormat != "text" || cfg.RequestTimeoutSeconds != 9 {
		t.Errorf("merged config: got %+v", cfg)
	}
	if cws.GetConfigFile() != "todoboard.toml" {
		t.Errorf("GetConfigFile: got %q, want todoboard.toml", cws.GetConfigFile())
	}
	if len(cws.Files) != 2 || cws.Files[0] != userFile {
		t.Errorf("Files: got %v", cws.Files)
	}
	if want := filepath.Join(home, ".todoboard"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{"relative base url", []string{"--base-url", "localhost"}},
		{"ftp base url", []string{"--base-url", "ftp://example.com"}},
		{"negative timeout", []string{"--timeout", "-1"}},
		{"zero default user", []string{"--default-user", "0"}},
		{"bad log level", []string{"--log-level", "chatty"}},
		{"bad log format", []string{"--log-format", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(newFlagSet(), tt.args); err == nil {
				t.Errorf("Load(%v): expected error", tt.args)
			}
		})
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("decode example: %v", err)
	}
	if len(md.Undecoded()) != 0 {
		t.Errorf("example has unknown keys: %v", md.Undecoded())
	}
	cfg.LogDir = expandPath(cfg.LogDir)
	if err := cfg.Validate(); err != nil {
		t.Errorf("example should validate: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
	}
	if runtime.GOOS == "windows" {
		t.Setenv("TODOBOARD_TEST_HOME", home)
		tests = append(tests, struct {
			input string
			want  string
		}{
			input: `%TODOBOARD_TEST_HOME%\logs`,
			want:  filepath.Join(home, "logs"),
		})
	} else {
		tests = append(tests, struct {
			input string
			want  string
		}{
			input: `~\test`,
			want:  `~\test`,
		})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"off", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := boolFromString(tt.input); got != tt.want {
				t.Errorf("boolFromString(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEntries(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.DefaultUser = 7
	cws := &ConfigWithSources{
		Config:  cfg,
		Sources: map[string]ConfigSource{"default_user": SourceFlag},
	}

	entries := cws.Entries()
	if len(entries) != len(configFields()) {
		t.Fatalf("got %d entries, want %d", len(entries), len(configFields()))
	}
	if entries[0].Key != "base_url" || entries[0].Value != DefaultBaseURL || entries[0].Source != SourceDefault {
		t.Errorf("first entry: %+v", entries[0])
	}
	for _, e := range entries {
		if e.Key == "default_user" && (e.Value != "7" || e.Source != SourceFlag) {
			t.Errorf("default_user entry: %+v", e)
		}
		if e.Key == "log_timestamps" && e.Value != "true" {
			t.Errorf("log_timestamps entry: %+v", e)
		}
	}
}

// chdir changes the working directory for the duration of the test,
// matching testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
