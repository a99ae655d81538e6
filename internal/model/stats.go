package model

// UserStat is a user with its derived todo and post counts.
type UserStat struct {
	User           User
	TotalTodos     int
	CompletedTodos int
	TotalPosts     int
	// CompletionRate is a percentage in [0, 100].
	CompletionRate float64
}

// Summary aggregates statistics across all users.
type Summary struct {
	Users          int
	TotalTodos     int
	CompletedTodos int
	TotalPosts     int
	CompletionRate float64
}

// CompletionRate returns completed/total*100, or 0 when total is 0.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

type counts struct {
	todos     int
	completed int
	posts     int
}

// ComputeStats returns one stat per user, in user order.
// Todos and posts owned by unknown users are ignored.
func ComputeStats(users []User, todos []Todo, posts []Post) []UserStat {
	byUser := make(map[int]*counts, len(users))
	for _, u := range users {
		byUser[u.ID] = &counts{}
	}
	for _, t := range todos {
		c, ok := byUser[t.UserID]
		if !ok {
			continue
		}
		c.todos++
		if t.Completed {
			c.completed++
		}
	}
	for _, p := range posts {
		if c, ok := byUser[p.UserID]; ok {
			c.posts++
		}
	}

	stats := make([]UserStat, 0, len(users))
	for _, u := range users {
		c := byUser[u.ID]
		stats = append(stats, UserStat{
			User:           u,
			TotalTodos:     c.todos,
			CompletedTodos: c.completed,
			TotalPosts:     c.posts,
			CompletionRate: CompletionRate(c.completed, c.todos),
		})
	}
	return stats
}

// Summarize totals a set of user stats.
func Summarize(stats []UserStat) Summary {
	s := Summary{Users: len(stats)}
	for _, st := range stats {
		s.TotalTodos += st.TotalTodos
		s.CompletedTodos += st.CompletedTodos
		s.TotalPosts += st.TotalPosts
	}
	s.CompletionRate = CompletionRate(s.CompletedTodos, s.TotalTodos)
	return s
}
