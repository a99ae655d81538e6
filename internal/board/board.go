package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todoboard/internal/model"
	"github.com/nibzard/todoboard/internal/parallel"
)

// Messages shown to the user. Detail goes to the logger.
const (
	MsgLoadFailed   = "Failed to load data. Please try again later."
	MsgAddFailed    = "Failed to add todo."
	MsgUpdateFailed = "Failed to update todo."
	MsgDeleteFailed = "Failed to delete todo."
)

var (
	// ErrBlankTitle is returned when a title is empty or whitespace only.
	ErrBlankTitle = errors.New("title is blank")
	// ErrNotFound is returned when no todo has the requested ID.
	ErrNotFound = errors.New("todo not found")
	// ErrInFlight is returned when a request for the same todo is pending.
	ErrInFlight = errors.New("request already in flight for todo")
	// ErrNotEditing is returned by SaveEdit when no edit is active.
	ErrNotEditing = errors.New("no todo is being edited")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("board closed")
)

// API is the subset of the demonstration API the board needs.
type API interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListTodos(ctx context.Context) ([]model.Todo, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	CreateTodo(ctx context.Context, in model.NewTodo) (model.Todo, error)
	UpdateTodo(ctx context.Context, t model.Todo) (model.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}

// Edit is the active edit buffer.
type Edit struct {
	ID     int64
	Buffer string
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithClock sets the time source used for client-assigned todo IDs.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// Board holds session state. It is safe for concurrent use.
type Board struct {
	api    API
	logger *log.Logger
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	users    []model.User
	todos    []model.Todo
	posts    []model.Post
	filter   model.Filter
	edit     *Edit
	inflight map[int64]bool
	loaded   bool
	loading  bool
	closed   bool
	lastID   int64
	errMsg   string
}

// New creates an empty board backed by api.
func New(api API, opts ...Option) *Board {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Board{
		api:      api,
		logger:   log.New(io.Discard),
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		filter:   model.Filter{Completion: model.FilterAll},
		inflight: make(map[int64]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Close cancels pending requests. Responses that arrive later are dropped.
func (b *Board) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.cancel()
}

// scope derives a request context that ends with ctx or with the board.
func (b *Board) scope(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(b.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Load fetches users, todos, and posts concurrently. The three collections
// are replaced together only if every request succeeds.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.loading = true
	b.mu.Unlock()

	ctx, stop := b.scope(ctx)
	defer stop()

	var (
		users []model.User
		todos []model.Todo
		posts []model.Post
	)
	pool := parallel.NewWorkerPool(ctx, 0, true)
	pool.Submit("users", func(ctx context.Context) (err error) {
		users, err = b.api.ListUsers(ctx)
		return err
	})
	pool.Submit("todos", func(ctx context.Context) (err error) {
		todos, err = b.api.ListTodos(ctx)
		return err
	})
	pool.Submit("posts", func(ctx context.Context) (err error) {
		posts, err = b.api.ListPosts(ctx)
		return err
	})
	results, errs := pool.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = false
	if b.closed {
		return ErrClosed
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		b.errMsg = MsgLoadFailed
		b.logger.Error("load failed", "err", err)
		return fmt.Errorf("load: %w", err)
	}

	b.users, b.todos, b.posts = users, todos, posts
	b.loaded = true
	b.errMsg = ""
	if b.edit != nil && b.indexLocked(b.edit.ID) < 0 {
		b.edit = nil
	}
	for _, r := range results {
		b.logger.Debug("loaded", "collection", r.Name, "duration", r.Duration)
	}
	b.logger.Info("load complete", "users", len(users), "todos", len(todos), "posts", len(posts))
	return nil
}

// Add creates a todo for userID. The local record gets a client-assigned
// ID; the ID echoed by the API is ignored.
func (b *Board) Add(ctx context.Context, title string, userID int) (model.Todo, error) {
	if strings.TrimSpace(title) == "" {
		return model.Todo{}, ErrBlankTitle
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return model.Todo{}, ErrClosed
	}
	b.mu.Unlock()

	ctx, stop := b.scope(ctx)
	defer stop()
	echo, err := b.api.CreateTodo(ctx, model.NewTodo{Title: title, UserID: userID, Completed: false})

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return model.Todo{}, ErrClosed
	}
	if err != nil {
		b.failLocked("add todo", MsgAddFailed, err, "user_id", userID)
		return model.Todo{}, err
	}

	t := model.Todo{ID: b.nextIDLocked(), UserID: userID, Title: title, Completed: false}
	b.todos = append(b.todos, t)
	b.errMsg = ""
	b.logger.Info("todo added", "id", t.ID, "server_id", echo.ID, "user_id", userID)
	return t, nil
}

// nextIDLocked returns the current Unix-millisecond time, bumped past the
// last assigned ID so that two adds in the same millisecond stay distinct.
func (b *Board) nextIDLocked() int64 {
	id := b.now().UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	return id
}

// Toggle inverts the completed flag of a todo.
func (b *Board) Toggle(ctx context.Context, id int64) error {
	t, err := b.acquire(id)
	if err != nil {
		return err
	}
	updated := t
	updated.Completed = !t.Completed

	ctx, stop := b.scope(ctx)
	defer stop()
	_, err = b.api.UpdateTodo(ctx, updated)

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inflight, id)
	if b.closed {
		return ErrClosed
	}
	if err != nil {
		b.failLocked("toggle todo", MsgUpdateFailed, err, "id", id)
		return err
	}
	if i := b.indexLocked(id); i >= 0 {
		b.todos[i].Completed = updated.Completed
	}
	b.errMsg = ""
	return nil
}

// StartEdit begins editing a todo, seeding the buffer with its title.
// Any unsaved buffer for another todo is discarded.
func (b *Board) StartEdit(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	b.edit = &Edit{ID: id, Buffer: b.todos[i].Title}
	return nil
}

// SetEditBuffer replaces the edit buffer. It does nothing when no edit is active.
func (b *Board) SetEditBuffer(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.edit != nil {
		b.edit.Buffer = s
	}
}

// CancelEdit discards the edit buffer.
func (b *Board) CancelEdit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.edit = nil
}

// Editing returns the active edit, if any.
func (b *Board) Editing() (Edit, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.edit == nil {
		return Edit{}, false
	}
	return *b.edit, true
}

// SaveEdit sends the edit buffer as the todo's new title. On failure the
// edit stays active.
func (b *Board) SaveEdit(ctx context.Context) error {
	b.mu.Lock()
	if b.edit == nil {
		b.mu.Unlock()
		return ErrNotEditing
	}
	edit := *b.edit
	b.mu.Unlock()

	if strings.TrimSpace(edit.Buffer) == "" {
		return ErrBlankTitle
	}
	t, err := b.acquire(edit.ID)
	if err != nil {
		return err
	}
	updated := t
	updated.Title = edit.Buffer

	ctx, stop := b.scope(ctx)
	defer stop()
	_, err = b.api.UpdateTodo(ctx, updated)

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inflight, edit.ID)
	if b.closed {
		return ErrClosed
	}
	if err != nil {
		b.failLocked("edit todo", MsgUpdateFailed, err, "id", edit.ID)
		return err
	}
	if i := b.indexLocked(edit.ID); i >= 0 {
		b.todos[i].Title = updated.Title
	}
	if b.edit != nil && b.edit.ID == edit.ID {
		b.edit = nil
	}
	b.errMsg = ""
	return nil
}

// Delete removes a todo.
func (b *Board) Delete(ctx context.Context, id int64) error {
	if _, err := b.acquire(id); err != nil {
		return err
	}

	ctx, stop := b.scope(ctx)
	defer stop()
	err := b.api.DeleteTodo(ctx, id)

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inflight, id)
	if b.closed {
		return ErrClosed
	}
	if err != nil {
		b.failLocked("delete todo", MsgDeleteFailed, err, "id", id)
		return err
	}
	if i := b.indexLocked(id); i >= 0 {
		b.todos = append(b.todos[:i], b.todos[i+1:]...)
	}
	if b.edit != nil && b.edit.ID == id {
		b.edit = nil
	}
	b.errMsg = ""
	return nil
}

// acquire takes the in-flight lock for id and returns the current record.
func (b *Board) acquire(id int64) (model.Todo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return model.Todo{}, ErrClosed
	}
	i := b.indexLocked(id)
	if i < 0 {
		return model.Todo{}, ErrNotFound
	}
	if b.inflight[id] {
		return model.Todo{}, ErrInFlight
	}
	b.inflight[id] = true
	return b.todos[i], nil
}

func (b *Board) indexLocked(id int64) int {
	for i := range b.todos {
		if b.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) failLocked(action, msg string, err error, keyvals ...any) {
	b.errMsg = msg
	b.logger.Error(action+" failed", append(keyvals, "err", err)...)
}
