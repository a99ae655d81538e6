package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nibzard/todoboard/internal/model"
)

func TestFormatRate(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0, "0.0%"},
		{50, "50.0%"},
		{12.5, "12.5%"},
		{100, "100.0%"},
	}
	for _, tt := range tests {
		if got := FormatRate(tt.rate); got != tt.want {
			t.Errorf("FormatRate(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestFormatTodo(t *testing.T) {
	names := map[int]string{1: "Leanne Graham"}
	tests := []struct {
		name    string
		todo    model.Todo
		verbose bool
		want    string
	}{
		{"pending", model.Todo{ID: 1, UserID: 1, Title: "a"}, false, "[ ] #1 a"},
		{"done", model.Todo{ID: 2, UserID: 1, Title: "b", Completed: true}, false, "[x] #2 b"},
		{"verbose", model.Todo{ID: 3, UserID: 1, Title: "c"}, true, "[ ] #3 c  (Leanne Graham)"},
		{"unknown owner", model.Todo{ID: 4, UserID: 9, Title: "d"}, true, "[ ] #4 d  (user 9)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTodo(tt.todo, names, tt.verbose); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteTodos(t *testing.T) {
	users := []model.User{{ID: 1, Name: "Leanne Graham"}}
	todos := []model.Todo{
		{ID: 1, UserID: 1, Title: "first"},
		{ID: 2, UserID: 1, Title: "second", Completed: true},
	}

	var buf bytes.Buffer
	if err := WriteTodos(&buf, todos, users, false); err != nil {
		t.Fatal(err)
	}
	want := "[ ] #1 first\n[x] #2 second\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteStats(t *testing.T) {
	users := []model.User{{ID: 1, Name: "Leanne Graham"}, {ID: 2, Name: "Ervin Howell"}}
	todos := []model.Todo{
		{ID: 1, UserID: 1, Completed: true},
		{ID: 2, UserID: 1},
		{ID: 3, UserID: 2},
	}
	posts := []model.Post{{ID: 1, UserID: 2}}
	stats := model.ComputeStats(users, todos, posts)
	sum := model.Summarize(stats)

	var buf bytes.Buffer
	if err := WriteStats(&buf, stats, sum); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "2 users | 3 todos | 1 completed (33.3%) | 1 posts\n") {
		t.Errorf("summary line: %q", strings.SplitN(out, "\n", 2)[0])
	}
	for _, want := range []string{"User", "Rate", "Leanne Graham", "50.0%", "Ervin Howell", "0.0%", "All users"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
