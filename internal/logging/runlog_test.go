package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNewRunLogger(t *testing.T) {
	t.Run("creates logs dir and file", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "nested", "base")

		logger, err := NewRunLogger(base)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer logger.Close()

		if logger.Dir != filepath.Join(base, "logs") {
			t.Errorf("Dir: got %q", logger.Dir)
		}
		if logger.RunID == "" {
			t.Error("expected RunID to be set")
		}
		if !strings.HasSuffix(logger.LogPath, logger.RunID+".jsonl") {
			t.Errorf("LogPath: got %q", logger.LogPath)
		}
		if _, err := os.Stat(logger.LogPath); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		_, err := NewRunLogger("")
		if err == nil {
			t.Fatal("expected error for empty base dir, got nil")
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("expected empty dir error, got %v", err)
		}
	})
}

func TestRunLoggerWriter(t *testing.T) {
	logger, err := NewRunLogger(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	l := New(logger.Writer(), DefaultOptions())
	l.Info("loaded", "users", 10)

	content, err := os.ReadFile(logger.LogPath)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Contains(content, []byte(`"users":10`)) {
		t.Errorf("expected file to contain users field, got %q", content)
	}
}

func TestRunLoggerClose(t *testing.T) {
	t.Run("close nil logger", func(t *testing.T) {
		var logger *RunLogger
		if err := logger.Close(); err != nil {
			t.Errorf("close nil logger failed: %v", err)
		}
	})

	t.Run("close logger with nil file", func(t *testing.T) {
		logger := &RunLogger{}
		if err := logger.Close(); err != nil {
			t.Errorf("close logger with nil file failed: %v", err)
		}
	})
}

func TestFindLatestLog(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		got, err := FindLatestLog(filepath.Join(t.TempDir(), "none"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("picks newest jsonl", func(t *testing.T) {
		dir := t.TempDir()
		now := time.Now()
		files := []struct {
			name string
			age  time.Duration
		}{
			{"old.jsonl", 2 * time.Hour},
			{"new.jsonl", time.Minute},
			{"newest.txt", 0},
		}
		for _, f := range files {
			path := filepath.Join(dir, f.name)
			if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
				t.Fatal(err)
			}
			mt := now.Add(-f.age)
			if err := os.Chtimes(path, mt, mt); err != nil {
				t.Fatal(err)
			}
		}
		if err := os.Mkdir(filepath.Join(dir, "dir.jsonl"), 0755); err != nil {
			t.Fatal(err)
		}

		got, err := FindLatestLog(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := filepath.Join(dir, "new.jsonl"); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func writeLines(t *testing.T, n int, trailingNewline bool) string {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		b.WriteString("line ")
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString(string(rune('a' + i%26)))
		if i < n || trailingNewline {
			b.WriteByte('\n')
		}
	}
	path := filepath.Join(t.TempDir(), "run.jsonl")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTailLog(t *testing.T) {
	tests := []struct {
		name     string
		lines    int
		trailing bool
		n        int
		want     int
	}{
		{"all lines", 5, true, 0, 5},
		{"last two", 5, true, 2, 2},
		{"more than file", 3, true, 10, 3},
		{"no trailing newline", 5, false, 2, 2},
		{"spans chunks", 2000, true, 1500, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeLines(t, tt.lines, tt.trailing)
			content, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			all := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")

			var buf bytes.Buffer
			if err := TailLog(context.Background(), &buf, path, tt.n, false); err != nil {
				t.Fatalf("TailLog: %v", err)
			}
			got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			if len(got) != tt.want {
				t.Fatalf("got %d lines, want %d", len(got), tt.want)
			}
			if got[len(got)-1] != all[len(all)-1] {
				t.Errorf("last line: got %q, want %q", got[len(got)-1], all[len(all)-1])
			}
			if got[0] != all[len(all)-tt.want] {
				t.Errorf("first line: got %q, want %q", got[0], all[len(all)-tt.want])
			}
		})
	}
}

func TestTailLogMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := TailLog(context.Background(), &buf, filepath.Join(t.TempDir(), "nope.jsonl"), 5, false)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTailLogFollow(t *testing.T) {
	old := followInterval
	followInterval = 5 * time.Millisecond
	t.Cleanup(func() { followInterval = old })

	path := filepath.Join(t.TempDir(), "run.jsonl")
	if err := os.WriteFile(path, []byte("first\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- TailLog(ctx, &out, path, 0, true) }()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("second\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "second") {
		if time.Now().After(deadline) {
			t.Fatalf("appended line not followed, got %q", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("TailLog returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("TailLog did not stop after cancel")
	}

	if got := out.String(); got != "first\nsecond\n" {
		t.Errorf("output: got %q", got)
	}
}
