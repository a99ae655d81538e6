package model

import (
	"fmt"
	"strings"
)

// User is a read-only account record.
type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username,omitempty"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Address  Address `json:"address,omitzero"`
	Company  Company `json:"company"`
}

// Address is the postal address attached to a user.
type Address struct {
	Street  string `json:"street,omitempty"`
	Suite   string `json:"suite,omitempty"`
	City    string `json:"city,omitempty"`
	Zipcode string `json:"zipcode,omitempty"`
}

// Company is the employer attached to a user.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase,omitempty"`
	BS          string `json:"bs,omitempty"`
}

// Todo is a single todo item owned by a user.
type Todo struct {
	ID        int64  `json:"id"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NewTodo is the request body for creating a todo.
type NewTodo struct {
	Title     string `json:"title"`
	UserID    int    `json:"userId"`
	Completed bool   `json:"completed"`
}

// Post is a read-only post record. Only its owner is used.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// CompletionFilter selects todos by completion state.
type CompletionFilter string

const (
	FilterAll       CompletionFilter = "all"
	FilterCompleted CompletionFilter = "completed"
	FilterPending   CompletionFilter = "pending"
)

// ParseCompletionFilter parses a filter name. The empty string means all.
func ParseCompletionFilter(s string) (CompletionFilter, error) {
	switch CompletionFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCompleted, "done":
		return FilterCompleted, nil
	case FilterPending, "todo":
		return FilterPending, nil
	default:
		return "", fmt.Errorf("invalid completion filter %q, must be one of: all, completed, pending", s)
	}
}

// Next returns the filter that follows f in the all, completed, pending cycle.
func (f CompletionFilter) Next() CompletionFilter {
	switch f {
	case FilterAll, "":
		return FilterCompleted
	case FilterCompleted:
		return FilterPending
	default:
		return FilterAll
	}
}

// Matches reports whether a todo with the given completion flag passes f.
func (f CompletionFilter) Matches(completed bool) bool {
	switch f {
	case FilterCompleted:
		return completed
	case FilterPending:
		return !completed
	default:
		return true
	}
}

// AllUsers is the Filter.UserID value that selects every user.
const AllUsers = 0

// Filter is the session filter state applied to the todo list.
type Filter struct {
	Search     string
	Completion CompletionFilter
	UserID     int
}

// Match reports whether t passes every clause of the filter.
func (f Filter) Match(t Todo) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
		return false
	}
	if !f.Completion.Matches(t.Completed) {
		return false
	}
	return f.UserID == AllUsers || f.UserID == t.UserID
}

// FilterTodos returns the todos that match f, in input order.
func FilterTodos(todos []Todo, f Filter) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
