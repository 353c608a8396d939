package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Up      key.Binding
	Down    key.Binding
	Add     key.Binding
	Grab    key.Binding
	Focus   key.Binding
	View    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Jump    key.Binding
	Search  key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "slot up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "slot down")),
		Add:     key.NewBinding(key.WithKeys("a", "f"), key.WithHelp("a", "add to favorites")),
		Grab:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drag to slot")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "carousel/favorites")),
		View:    key.NewBinding(key.WithKeys("v", " "), key.WithHelp("v", "enlarge")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Jump:    key.NewBinding(key.WithKeys(":", "#"), key.WithHelp(":", "jump to #")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refetch")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Add, k.Grab, k.Focus, k.View, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Jump, k.Search},
		{k.Add, k.Grab, k.Focus, k.Up, k.Down},
		{k.View, k.Confirm, k.Cancel, k.Refresh, k.Help, k.Quit},
	}
}

// slotKey maps "1".."9" to slots 0..8 and "0" to slot 9.
func slotKey(s string) (int, bool) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	if s[0] == '0' {
		return 9, true
	}
	return int(s[0] - '1'), true
}
