package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todoboard/internal/api"
	"github.com/nibzard/todoboard/internal/board"
	"github.com/nibzard/todoboard/internal/config"
	"github.com/nibzard/todoboard/internal/logging"
)

// session bundles what the API-backed commands share.
type session struct {
	runLog *logging.RunLogger
	logger *log.Logger
	client *api.Client
	board  *board.Board
}

// openSession creates the run log, the API client, and the board.
func openSession(cfg *config.Config) (*session, error) {
	runLog, err := logging.NewRunLogger(cfg.LogDir)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg, runLog)
	if err != nil {
		runLog.Close()
		return nil, err
	}
	client, err := newClient(cfg, logger, cfg.ValidateResponses)
	if err != nil {
		runLog.Close()
		return nil, err
	}
	return &session{
		runLog: runLog,
		logger: logger,
		client: client,
		board:  board.New(client, board.WithLogger(logger)),
	}, nil
}

func (s *session) Close() error {
	s.board.Close()
	return s.runLog.Close()
}

// load fetches the board data. On failure the user-facing message is
// printed and the detail is returned.
func (s *session) load(ctx context.Context) error {
	if err := s.board.Load(ctx); err != nil {
		if msg := s.board.Err(); msg != "" {
			fmt.Fprintln(stderr, msg)
		}
		return err
	}
	return nil
}

func newLogger(cfg *config.Config, runLog *logging.RunLogger) (*log.Logger, error) {
	opts, err := logging.ParseOptions(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	if err != nil {
		return nil, err
	}
	return logging.New(runLog.Writer(), opts), nil
}

func newClient(cfg *config.Config, logger *log.Logger, validate bool) (*api.Client, error) {
	opts := []api.Option{
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
		api.WithLogger(logger),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, api.WithUserAgent(cfg.UserAgent))
	}
	if validate {
		v, err := api.NewValidator()
		if err != nil {
			return nil, fmt.Errorf("loading response schemas: %w", err)
		}
		opts = append(opts, api.WithValidator(v))
	}
	return api.New(cfg.BaseURL, opts...)
}
