package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	enter   key.Binding
	back    key.Binding
	board   key.Binding
	library key.Binding
	stats   key.Binding
	search  key.Binding
	move    key.Binding
	remove  key.Binding
	refresh key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		board:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "board")),
		library: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "library")),
		stats:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboard")),
		search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		move:    key.NewBinding(key.WithKeys("<", ">"), key.WithHelp("</>", "move card")),
		remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.board, k.library, k.stats, k.search, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.enter, k.back, k.move, k.remove},
		{k.board, k.library, k.stats, k.search},
		{k.refresh, k.quit},
	}
}
