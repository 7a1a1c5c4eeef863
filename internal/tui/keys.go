package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the search screen.
type KeyMap struct {
	// Completion keys, offered to the controller first while typing.
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Accept key.Binding
	Space  key.Binding
	Cancel key.Binding

	// Results list.
	ResultUp   key.Binding
	ResultDown key.Binding
	Open       key.Binding
	Yank       key.Binding
	YankURL    key.Binding

	// Tag board.
	FocusTags key.Binding
	TagLeft   key.Binding
	TagRight  key.Binding
	ToggleTag key.Binding
	ClearTags key.Binding

	Back key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("up", "previous suggestion"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("down", "next suggestion"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "suggest"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "suggest backwards"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "commit tag / search"),
		),
		Space: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "commit typed tag"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		ResultUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		ResultDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "open"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank URL"),
		),
		YankURL: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "yank URL"),
		),
		FocusTags: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "tags"),
		),
		TagLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "previous tag"),
		),
		TagRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "next tag"),
		),
		ToggleTag: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle tag"),
		),
		ClearTags: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear tags"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "/", "tab"),
			key.WithHelp("esc", "back to input"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
