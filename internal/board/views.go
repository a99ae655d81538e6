package board

import (
	"slices"

	"github.com/nibzard/todoboard/internal/model"
)

// Snapshot is a consistent copy of board state and its derived views.
type Snapshot struct {
	Users    []model.User
	Todos    []model.Todo
	Posts    []model.Post
	Filtered []model.Todo
	Stats    []model.UserStat
	Summary  model.Summary
	Filter   model.Filter
	Edit     *Edit
	InFlight map[int64]bool
	Loaded   bool
	Loading  bool
	Err      string
}

// Snapshot returns the current state with derived views computed from it.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Snapshot{
		Users:    slices.Clone(b.users),
		Todos:    slices.Clone(b.todos),
		Posts:    slices.Clone(b.posts),
		Filter:   b.filter,
		InFlight: make(map[int64]bool, len(b.inflight)),
		Loaded:   b.loaded,
		Loading:  b.loading,
		Err:      b.errMsg,
	}
	for id := range b.inflight {
		s.InFlight[id] = true
	}
	if b.edit != nil {
		e := *b.edit
		s.Edit = &e
	}
	s.Filtered = model.FilterTodos(s.Todos, s.Filter)
	s.Stats = model.ComputeStats(s.Users, s.Todos, s.Posts)
	s.Summary = model.Summarize(s.Stats)
	return s
}

// Users returns a copy of the loaded users.
func (b *Board) Users() []model.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.users)
}

// Todos returns a copy of the full todo list.
func (b *Board) Todos() []model.Todo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.todos)
}

// Filtered returns the todos matching the current filter.
func (b *Board) Filtered() []model.Todo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return model.FilterTodos(b.todos, b.filter)
}

// Stats returns per-user statistics for the current snapshot.
func (b *Board) Stats() []model.UserStat {
	b.mu.Lock()
	defer b.mu.Unlock()
	return model.ComputeStats(b.users, b.todos, b.posts)
}

// Summary returns totals across all users for the current snapshot.
func (b *Board) Summary() model.Summary {
	b.mu.Lock()
	defer b.mu.Unlock()
	return model.Summarize(model.ComputeStats(b.users, b.todos, b.posts))
}

// Filter returns the current filter state.
func (b *Board) Filter() model.Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// SetFilter replaces the whole filter state.
func (b *Board) SetFilter(f model.Filter) {
	if f.Completion == "" {
		f.Completion = model.FilterAll
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter = f
}

// SetSearch sets the search term.
func (b *Board) SetSearch(term string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.Search = term
}

// SetCompletion sets the completion filter.
func (b *Board) SetCompletion(c model.CompletionFilter) {
	if c == "" {
		c = model.FilterAll
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.Completion = c
}

// SelectUser restricts the list to one user. model.AllUsers clears it.
func (b *Board) SelectUser(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.UserID = id
}

// Loaded reports whether a load has succeeded.
func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

// Loading reports whether a load is in progress.
func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// InFlight reports whether a write for id is pending.
func (b *Board) InFlight(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inflight[id]
}

// Err returns the message for the most recent failure, or "".
func (b *Board) Err() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMsg
}

// ClearErr dismisses the current message.
func (b *Board) ClearErr() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errMsg = ""
}
