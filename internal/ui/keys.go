package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the list-mode bindings.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Add        key.Binding
	Search     key.Binding
	Filter     key.Binding
	NextUser   key.Binding
	PrevUser   key.Binding
	TargetUser key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Reload     key.Binding
	Dismiss    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "completion filter")),
		NextUser:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "next user")),
		PrevUser:   key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "previous user")),
		TargetUser: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "owner of new todos")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d/x", "delete")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Dismiss:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss error")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Edit, k.Delete},
		{k.Add, k.TargetUser, k.Search, k.Filter, k.NextUser, k.PrevUser},
		{k.Reload, k.Dismiss, k.Help, k.Quit},
	}
}
