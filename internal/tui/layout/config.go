package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Screen   ScreenConfig
	Dropdown DropdownConfig
	Input    InputConfig
	Text     TextConfig
}

// ScreenConfig holds the dimensions of the search screen.
type ScreenConfig struct {
	// HeaderLines is subtracted from terminal height for the results list.
	// Accounts for: app padding (1) + input (1) + status line (1) + tag board (2) + help bar (2) = 7
	HeaderLines int

	// MinResultsHeight is the minimum number of result rows.
	MinResultsHeight int

	// LinesPerResult is the row count of one rendered bookmark (title + url).
	LinesPerResult int

	// ContentPadding is subtracted from terminal width for row rendering.
	ContentPadding int
}

// DropdownConfig holds suggestion dropdown configuration.
type DropdownConfig struct {
	// MaxVisible: max suggestions shown at once.
	MaxVisible int

	// Width of the dropdown box in characters.
	Width int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	Width           int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Screen: ScreenConfig{
			HeaderLines:      7,
			MinResultsHeight: 4,
			LinesPerResult:   2,
			ContentPadding:   6,
		},
		Dropdown: DropdownConfig{
			MaxVisible: 8,
			Width:      32,
		},
		Input: InputConfig{
			SearchCharLimit: 200,
			Width:           60,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
