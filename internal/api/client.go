package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-json-experiment/json"

	"github.com/nibzard/todoboard/internal/model"
)

// DefaultBaseURL is the public demonstration API.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Client talks to the demonstration API. It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	validator *Validator
	logger    *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithValidator enables schema validation of response bodies.
func WithValidator(v *Validator) Option {
	return func(c *Client) {
		c.validator = v
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    http.DefaultClient,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListUsers fetches every user.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "users", nil, SchemaUsers, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListTodos fetches every todo.
func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, "todos", nil, SchemaTodos, &todos); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// ListPosts fetches every post.
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := c.do(ctx, http.MethodGet, "posts", nil, SchemaPosts, &posts); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// CreateTodo posts a new todo and returns the echoed record.
func (c *Client) CreateTodo(ctx context.Context, in model.NewTodo) (model.Todo, error) {
	var out model.Todo
	if err := c.do(ctx, http.MethodPost, "todos", in, SchemaTodo, &out); err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return out, nil
}

// UpdateTodo replaces a todo with t and returns the echoed record.
func (c *Client) UpdateTodo(ctx context.Context, t model.Todo) (model.Todo, error) {
	var out model.Todo
	if err := c.do(ctx, http.MethodPut, todoPath(t.ID), t, SchemaTodo, &out); err != nil {
		return model.Todo{}, fmt.Errorf("update todo %d: %w", t.ID, err)
	}
	return out, nil
}

// DeleteTodo deletes a todo. Only the status is checked.
func (c *Client) DeleteTodo(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, todoPath(id), nil, "", nil); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

func todoPath(id int64) string {
	return "todos/" + strconv.FormatInt(id, 10)
}

// do sends a request and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body any, schema string, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", "/"+path, "err", err)
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("request", "method", method, "path", "/"+path, "status", resp.StatusCode,
		"bytes", len(data), "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			Path:       "/" + path,
			StatusCode: resp.StatusCode,
			Status:     strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))),
		}
	}

	if out == nil {
		return nil
	}
	if c.validator != nil && schema != "" {
		if err := c.validator.Validate(schema, data); err != nil {
			return fmt.Errorf("validate response: %w", err)
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
