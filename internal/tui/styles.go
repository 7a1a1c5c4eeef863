package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App              lipgloss.Style
	Prompt           lipgloss.Style
	Input            lipgloss.Style
	InputError       lipgloss.Style // Input box while an invalid tag flashes
	Dropdown         lipgloss.Style
	DropdownItem     lipgloss.Style
	DropdownSelected lipgloss.Style
	TagActive        lipgloss.Style
	TagInactive      lipgloss.Style
	TagHighlight     lipgloss.Style // Recently committed tag
	TagCursor        lipgloss.Style
	Title            lipgloss.Style
	Item             lipgloss.Style
	ItemSelected     lipgloss.Style
	URL              lipgloss.Style
	Tag              lipgloss.Style
	Status           lipgloss.Style
	Error            lipgloss.Style
	Help             lipgloss.Style
	Empty            lipgloss.Style
	HintKey          lipgloss.Style // Key portion of hints (e.g., "Enter", "j/k")
	HintDesc         lipgloss.Style // Description portion of hints (e.g., "open", "move")
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	danger := lipgloss.AdaptiveColor{Light: "#8A4A4A", Dark: "#AF5F5F"}  // muted red
	dark := lipgloss.Color("#1A1A1A")

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Input: lipgloss.NewStyle().
			Foreground(primary),

		InputError: lipgloss.NewStyle().
			Foreground(danger).
			Underline(true),

		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		DropdownItem: lipgloss.NewStyle().
			Foreground(primary),

		DropdownSelected: lipgloss.NewStyle().
			Background(accent).
			Foreground(dark),

		TagActive: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		TagInactive: lipgloss.NewStyle().
			Foreground(subtle),

		TagHighlight: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Underline(true),

		TagCursor: lipgloss.NewStyle().
			Background(accent).
			Foreground(dark),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(dark),

		URL: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(1),

		Tag: lipgloss.NewStyle().
			Foreground(subtle),

		Status: lipgloss.NewStyle().
			Foreground(subtle),

		Error: lipgloss.NewStyle().
			Foreground(danger),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingTop(1),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
