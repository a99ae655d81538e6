package model

import "testing"

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		completed, total int
		want             float64
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 8, 12.5},
		{3, 4, 75},
		{2, 2, 100},
		{1, 4, 25},
	}
	for _, tt := range tests {
		if got := CompletionRate(tt.completed, tt.total); got != tt.want {
			t.Errorf("CompletionRate(%d, %d): got %v, want %v", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestComputeStats(t *testing.T) {
	users := []User{{ID: 1, Name: "Leanne"}, {ID: 2, Name: "Ervin"}, {ID: 3, Name: "Clementine"}}
	todos := []Todo{
		{ID: 1, UserID: 1, Completed: true},
		{ID: 2, UserID: 1, Completed: false},
		{ID: 3, UserID: 1, Completed: true},
		{ID: 4, UserID: 2, Completed: false},
		{ID: 5, UserID: 2, Completed: false},
	}
	posts := []Post{{ID: 1, UserID: 1}, {ID: 2, UserID: 1}}

	stats := ComputeStats(users, todos, posts)
	if len(stats) != 3 {
		t.Fatalf("got %d stats, want 3", len(stats))
	}

	first := stats[0]
	if first.User.ID != 1 || first.TotalTodos != 3 || first.CompletedTodos != 2 || first.TotalPosts != 2 {
		t.Errorf("user 1 stat: got %+v", first)
	}
	if first.CompletionRate != CompletionRate(2, 3) {
		t.Errorf("user 1 rate: got %v, want %v", first.CompletionRate, CompletionRate(2, 3))
	}

	second := stats[1]
	if second.TotalTodos != 2 || second.CompletedTodos != 0 || second.TotalPosts != 0 || second.CompletionRate != 0 {
		t.Errorf("user 2 stat: got %+v", second)
	}

	third := stats[2]
	if third.TotalTodos != 0 || third.CompletionRate != 0 {
		t.Errorf("user 3 stat: got %+v, want zero todos and rate 0", third)
	}
}

func TestComputeStatsIgnoresUnknownOwners(t *testing.T) {
	users := []User{{ID: 1}}
	todos := []Todo{{ID: 1, UserID: 9, Completed: true}}
	posts := []Post{{ID: 1, UserID: 9}}

	stats := ComputeStats(users, todos, posts)
	if stats[0].TotalTodos != 0 || stats[0].TotalPosts != 0 {
		t.Errorf("got %+v, want no counts for user 1", stats[0])
	}
}

func TestSummarize(t *testing.T) {
	stats := []UserStat{
		{TotalTodos: 3, CompletedTodos: 2, TotalPosts: 2},
		{TotalTodos: 1, CompletedTodos: 0, TotalPosts: 5},
	}
	s := Summarize(stats)
	if s.Users != 2 || s.TotalTodos != 4 || s.CompletedTodos != 2 || s.TotalPosts != 7 {
		t.Errorf("Summarize: got %+v", s)
	}
	if s.CompletionRate != 50 {
		t.Errorf("CompletionRate: got %v, want 50", s.CompletionRate)
	}
}
