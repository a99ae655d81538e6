package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nibzard/todoboard/internal/config"
	"github.com/nibzard/todoboard/internal/logging"
	"github.com/nibzard/todoboard/internal/model"
	"github.com/nibzard/todoboard/internal/parallel"
	"github.com/nibzard/todoboard/internal/ui"
)

// tuiCommand launches the interactive board.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todoboard tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	s.logger.Info("tui start", "base_url", s.client.BaseURL(), "run_id", s.runLog.RunID)
	return ui.Run(ctx, s.board, cfg.DefaultUser)
}

// statsCommand loads once and prints the statistics grid.
func statsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todoboard stats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.load(ctx); err != nil {
		return err
	}
	return ui.WriteStats(stdout, s.board.Stats(), s.board.Summary())
}

// lsCommand loads once and prints the filtered todo list.
func lsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todoboard ls", flag.ContinueOnError)
	fs.SetOutput(stderr)
	search := fs.String("search", "", "Case-insensitive title substring")
	completion := fs.String("filter", string(model.FilterAll), "Completion filter (all|completed|pending)")
	user := fs.Int("user", model.AllUsers, "Only todos of this user (0 = all)")
	verbose := fs.Bool("v", false, "Show todo owners")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	filter, err := model.ParseCompletionFilter(*completion)
	if err != nil {
		return err
	}
	if *user < 0 {
		return fmt.Errorf("invalid user %d", *user)
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.load(ctx); err != nil {
		return err
	}
	s.board.SetFilter(model.Filter{Search: *search, Completion: filter, UserID: *user})

	todos := s.board.Filtered()
	if err := ui.WriteTodos(stdout, todos, s.board.Users(), *verbose); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\n%d of %d todos\n", len(todos), len(s.board.Todos()))
	return nil
}

// doctorCommand prints the effective config and probes the list endpoints.
func doctorCommand(ctx context.Context, cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("todoboard doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := cws.Config

	fmt.Fprintln(stdout, "todoboard doctor")
	fmt.Fprintln(stdout, "================")
	fmt.Fprintln(stdout)

	allOK := true

	// Config values and their origin
	fmt.Fprintln(stdout, "Config:")
	for _, e := range cws.Entries() {
		if e.Source == config.SourceDefault && !*verbose {
			continue
		}
		value := e.Value
		if value == "" {
			value = "(empty)"
		}
		fmt.Fprintf(stdout, "  %-24s %s (%s)\n", e.Key, value, e.Source)
	}
	if len(cws.Files) == 0 {
		fmt.Fprintln(stdout, "  Files: none (defaults only)")
	}
	for _, f := range cws.Files {
		fmt.Fprintf(stdout, "  File: %s\n", f)
	}
	fmt.Fprintln(stdout)

	// Log directory
	logDir := logging.LogDir(cfg.LogDir)
	fmt.Fprintf(stdout, "Log directory: %s\n", logDir)
	if info, err := os.Stat(logDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(stdout, "  ⚠️  Not found (will be created on first run)")
		} else {
			fmt.Fprintf(stdout, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(stdout, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(stdout, "  ✅ OK")
	}
	fmt.Fprintln(stdout)

	// API reachability, always with schema validation
	client, err := newClient(cfg, logging.Discard(), true)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "API: %s\n", client.BaseURL())

	var users, todos, posts int
	pool := parallel.NewWorkerPool(ctx, 0, false)
	pool.Submit("users", func(ctx context.Context) error {
		got, err := client.ListUsers(ctx)
		users = len(got)
		return err
	})
	pool.Submit("todos", func(ctx context.Context) error {
		got, err := client.ListTodos(ctx)
		todos = len(got)
		return err
	})
	pool.Submit("posts", func(ctx context.Context) error {
		got, err := client.ListPosts(ctx)
		posts = len(got)
		return err
	})
	results, _ := pool.Wait()

	records := []int{users, todos, posts}
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stdout, "  ❌ GET /%s: %v\n", r.Name, r.Err)
			allOK = false
			continue
		}
		fmt.Fprintf(stdout, "  ✅ GET /%s: %d records (%s)\n", r.Name, records[i], r.Duration.Round(time.Millisecond))
	}
	fmt.Fprintln(stdout)

	if allOK {
		fmt.Fprintln(stdout, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(stdout, "⚠️  Some checks failed. todoboard may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// configCommand handles "config init [path]".
func configCommand(args []string) error {
	if len(args) == 0 || args[0] != "init" {
		return fmt.Errorf("usage: todoboard config init [path]")
	}
	fs := flag.NewFlagSet("todoboard config init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	force := fs.Bool("force", false, "Overwrite an existing file")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}

	path := "todoboard.toml"
	if fs.NArg() == 1 {
		path = fs.Arg(0)
	}
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(config.ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}

// tailCommand tails the latest run log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todoboard tail", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logPath, err := logging.FindLatestLog(logging.LogDir(cfg.LogDir))
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(stdout)

	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}
