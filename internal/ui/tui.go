package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todoboard/internal/board"
	"github.com/nibzard/todoboard/internal/model"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeAdd
	modeEdit
)

const (
	actionAdd    = "add"
	actionToggle = "toggle"
	actionEdit   = "edit"
	actionDelete = "delete"
)

const (
	minListRows     = 5
	defaultListRows = 12
	// chromeRows is everything on screen besides the todo list and the
	// statistics grid rows.
	chromeRows = 16
)

type loadedMsg struct {
	err error
}

type actionMsg struct {
	action string
	id     int64
	err    error
}

// Model is the bubbletea model of the board.
type Model struct {
	ctx   context.Context
	board *board.Board
	keys  keyMap
	help  help.Model
	input textinput.Model

	mode       mode
	prevSearch string
	cursor     int
	targetUser int
	height     int
	snap       board.Snapshot
}

// NewModel creates a model over b. New todos are owned by defaultUser until
// the user picks another.
func NewModel(ctx context.Context, b *board.Board, defaultUser int) *Model {
	input := textinput.New()
	input.CharLimit = 200
	return &Model{
		ctx:        ctx,
		board:      b,
		keys:       defaultKeyMap(),
		help:       help.New(),
		input:      input,
		targetUser: defaultUser,
		snap:       b.Snapshot(),
	}
}

// Run starts the interactive board. It requires a terminal on stdout.
func Run(ctx context.Context, b *board.Board, defaultUser int) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	defer b.Close()

	program := tea.NewProgram(NewModel(ctx, b, defaultUser), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case loadedMsg:
		m.refresh()
		if msg.err == nil {
			m.ensureTargetUser()
		}
		return m, nil
	case actionMsg:
		m.refresh()
		if msg.action == actionEdit && msg.err != nil && m.mode == modeList {
			// The board keeps the edit open on failure; reopen the input.
			if e, ok := m.board.Editing(); ok && e.ID == msg.id {
				return m, m.openInput(modeEdit, e.Buffer, "Title")
			}
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if m.mode == modeList {
			return m.updateList(msg)
		}
		return m.updateInput(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.Filtered)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		return m, m.openInput(modeAdd, "", "New todo title")
	case key.Matches(msg, m.keys.Search):
		m.prevSearch = m.snap.Filter.Search
		return m, m.openInput(modeSearch, m.prevSearch, "Search titles")
	case key.Matches(msg, m.keys.Filter):
		m.board.SetCompletion(m.snap.Filter.Completion.Next())
		m.refresh()
	case key.Matches(msg, m.keys.NextUser):
		m.board.SelectUser(m.cycleUser(m.snap.Filter.UserID, 1, true))
		m.refresh()
	case key.Matches(msg, m.keys.PrevUser):
		m.board.SelectUser(m.cycleUser(m.snap.Filter.UserID, -1, true))
		m.refresh()
	case key.Matches(msg, m.keys.TargetUser):
		m.targetUser = m.cycleUser(m.targetUser, 1, false)
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m, m.actionCmd(actionToggle, t.ID, func() error { return m.board.Toggle(m.ctx, t.ID) })
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok && m.board.StartEdit(t.ID) == nil {
			m.refresh()
			return m, m.openInput(modeEdit, t.Title, "Title")
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			return m, m.actionCmd(actionDelete, t.ID, func() error { return m.board.Delete(m.ctx, t.ID) })
		}
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Dismiss):
		m.board.ClearErr()
		m.refresh()
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		switch m.mode {
		case modeSearch:
			m.board.SetSearch(m.prevSearch)
		case modeEdit:
			m.board.CancelEdit()
		}
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		return m.submitInput()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	switch m.mode {
	case modeSearch:
		m.board.SetSearch(m.input.Value())
		m.refresh()
	case modeEdit:
		m.board.SetEditBuffer(m.input.Value())
	}
	return m, cmd
}

func (m *Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	switch m.mode {
	case modeSearch:
		m.closeInput()
		return m, nil
	case modeAdd:
		// Blank titles are ignored; the input stays open.
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		m.closeInput()
		owner := m.targetUser
		return m, m.actionCmd(actionAdd, 0, func() error {
			_, err := m.board.Add(m.ctx, value, owner)
			return err
		})
	case modeEdit:
		e, ok := m.board.Editing()
		if !ok {
			m.closeInput()
			return m, nil
		}
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		m.board.SetEditBuffer(value)
		m.closeInput()
		return m, m.actionCmd(actionEdit, e.ID, func() error { return m.board.SaveEdit(m.ctx) })
	}
	return m, nil
}

func (m *Model) openInput(md mode, value, placeholder string) tea.Cmd {
	m.mode = md
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.input.Blur()
	m.input.Reset()
	m.refresh()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.board.Close()
	return m, tea.Quit
}

func (m *Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.board.Load(m.ctx)}
	}
}

func (m *Model) actionCmd(action string, id int64, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{action: action, id: id, err: fn()}
	}
}

// refresh takes a new snapshot and keeps the cursor on the list.
func (m *Model) refresh() {
	m.snap = m.board.Snapshot()
	if m.cursor >= len(m.snap.Filtered) {
		m.cursor = len(m.snap.Filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) ensureTargetUser() {
	if len(m.snap.Users) == 0 {
		return
	}
	for _, u := range m.snap.Users {
		if u.ID == m.targetUser {
			return
		}
	}
	m.targetUser = m.snap.Users[0].ID
}

// cycleUser steps through the loaded user IDs, optionally with the
// all-users entry first.
func (m *Model) cycleUser(current, step int, withAll bool) int {
	ids := make([]int, 0, len(m.snap.Users)+1)
	if withAll {
		ids = append(ids, model.AllUsers)
	}
	for _, u := range m.snap.Users {
		ids = append(ids, u.ID)
	}
	if len(ids) == 0 {
		return current
	}
	pos := 0
	for i, id := range ids {
		if id == current {
			pos = i
			break
		}
	}
	return ids[((pos+step)%len(ids)+len(ids))%len(ids)]
}

func (m *Model) selected() (model.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Filtered) {
		return model.Todo{}, false
	}
	return m.snap.Filtered[m.cursor], true
}

func (m *Model) listRows() int {
	if m.height == 0 {
		return defaultListRows
	}
	rows := m.height - chromeRows - len(m.snap.Users)
	if rows < minListRows {
		return minListRows
	}
	return rows
}

func (m *Model) View() string {
	var b strings.Builder
	writeTitle(&b)

	s := m.snap
	if !s.Loaded {
		if s.Err != "" {
			writeError(&b, s.Err)
			b.WriteString("Press r to retry | q to quit\n")
			return b.String()
		}
		b.WriteString("Loading...\n")
		return b.String()
	}

	writeStats(&b, s)
	writeFilters(&b, s, m.targetUser)
	m.writeInput(&b)
	m.writeTodos(&b, s)
	if s.Err != "" {
		writeError(&b, s.Err)
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("todoboard") + "\n\n")
}

func writeError(b *strings.Builder, msg string) {
	b.WriteString(errorStyle.Render(msg) + dimStyle.Render("  (esc to dismiss)") + "\n")
}

func writeStats(b *strings.Builder, s board.Snapshot) {
	b.WriteString(sectionStyle.Render(SummaryLine(s.Summary)) + "\n")
	b.WriteString(StatsTable(s.Stats, s.Summary) + "\n\n")
}

func writeFilters(b *strings.Builder, s board.Snapshot, targetUser int) {
	names := UserNames(s.Users)
	user := "All users"
	if s.Filter.UserID != model.AllUsers {
		user = ownerName(names, s.Filter.UserID)
	}
	search := "-"
	if s.Filter.Search != "" {
		search = fmt.Sprintf("%q", s.Filter.Search)
	}
	fmt.Fprintf(b, "%s %s  %s %s  %s %s  %s %s\n",
		labelStyle.Render("Search:"), search,
		labelStyle.Render("Show:"), s.Filter.Completion,
		labelStyle.Render("User:"), user,
		labelStyle.Render("New todos for:"), ownerName(names, targetUser),
	)
}

func (m *Model) writeInput(b *strings.Builder) {
	label := ""
	switch m.mode {
	case modeList:
		b.WriteString("\n")
		return
	case modeSearch:
		label = "Search"
	case modeAdd:
		label = "Add"
	case modeEdit:
		label = "Edit"
	}
	b.WriteString(labelStyle.Render(label+":") + " " + m.input.View() + dimStyle.Render("  enter to submit, esc to cancel") + "\n")
}

func (m *Model) writeTodos(b *strings.Builder, s board.Snapshot) {
	fmt.Fprintf(b, "%s\n", sectionStyle.Render(fmt.Sprintf("Todos (%d of %d)", len(s.Filtered), len(s.Todos))))
	if len(s.Filtered) == 0 {
		b.WriteString(dimStyle.Render("  No todos match the current filter.") + "\n")
		return
	}

	rows := m.listRows()
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(s.Filtered))

	names := UserNames(s.Users)
	for i := start; i < end; i++ {
		t := s.Filtered[i]
		b.WriteString(formatTodoRow(t, ownerName(names, t.UserID), i == m.cursor, s.InFlight[t.ID]) + "\n")
	}
	if end < len(s.Filtered) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(s.Filtered)-end)) + "\n")
	}
}

func formatTodoRow(t model.Todo, owner string, current, pending bool) string {
	pointer := "  "
	if current {
		pointer = cursorStyle.Render("> ")
	}
	box := pendingStyle.Render("[ ]")
	title := t.Title
	if t.Completed {
		box = "[x]"
		title = doneStyle.Render(title)
	}
	line := fmt.Sprintf("%s%s %s %s", pointer, box, title, dimStyle.Render("("+owner+")"))
	if pending {
		line += dimStyle.Render(" saving...")
	}
	return line
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

