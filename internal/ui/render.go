package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/todoboard/internal/model"
)

// numericColumns are right-aligned in the statistics grid.
var numericColumns = map[int]bool{1: true, 2: true, 3: true, 4: true}

// StatsTable renders the per-user statistics grid with a totals row.
func StatsTable(stats []model.UserStat, sum model.Summary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("User", "Todos", "Done", "Rate", "Posts").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numericColumns[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})

	for _, st := range stats {
		t.Row(
			st.User.Name,
			strconv.Itoa(st.TotalTodos),
			strconv.Itoa(st.CompletedTodos),
			FormatRate(st.CompletionRate),
			strconv.Itoa(st.TotalPosts),
		)
	}
	t.Row(
		"All users",
		strconv.Itoa(sum.TotalTodos),
		strconv.Itoa(sum.CompletedTodos),
		FormatRate(sum.CompletionRate),
		strconv.Itoa(sum.TotalPosts),
	)
	return t.String()
}

// SummaryLine is the one-line header above the statistics grid.
func SummaryLine(sum model.Summary) string {
	return fmt.Sprintf("%d users | %d todos | %d completed (%s) | %d posts",
		sum.Users, sum.TotalTodos, sum.CompletedTodos, FormatRate(sum.CompletionRate), sum.TotalPosts)
}

// FormatRate renders a completion percentage with one decimal.
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}

// UserNames indexes user display names by ID.
func UserNames(users []model.User) map[int]string {
	names := make(map[int]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

// ownerName returns the display name of a user, falling back to the ID.
func ownerName(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("user %d", id)
}

// FormatTodo renders a todo as a single plain line. verbose appends the owner.
func FormatTodo(t model.Todo, names map[int]string, verbose bool) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("[%s] #%d %s", mark, t.ID, t.Title)
	if verbose {
		line += fmt.Sprintf("  (%s)", ownerName(names, t.UserID))
	}
	return line
}

// WriteTodos writes one line per todo.
func WriteTodos(w io.Writer, todos []model.Todo, users []model.User, verbose bool) error {
	names := UserNames(users)
	for _, t := range todos {
		if _, err := fmt.Fprintln(w, FormatTodo(t, names, verbose)); err != nil {
			return err
		}
	}
	return nil
}

// WriteStats writes the summary line and the statistics grid.
func WriteStats(w io.Writer, stats []model.UserStat, sum model.Summary) error {
	if _, err := fmt.Fprintln(w, SummaryLine(sum)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, StatsTable(stats, sum))
	return err
}
