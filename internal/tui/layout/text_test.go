package layout

import "testing"

func TestWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"ascii", "rust", 4},
		{"styled", "\x1b[1;31mrust\x1b[0m", 4},
		{"wide runes", "日本語", 6},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Width(tt.input); got != tt.want {
				t.Errorf("Width(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"fits", "axum", 10, "axum", false},
		{"exact fit", "axum", 4, "axum", false},
		{"cut with ellipsis", "The Rust Programming Language", 12, "The Rust ...", true},
		{"wide runes", "日本語のタグ", 7, "日本...", true},
		{"only ellipsis fits", "bookmarks", 3, "...", true},
		{"narrower than ellipsis", "bookmarks", 2, "..", true},
		{"zero width", "bookmarks", 0, "", true},
		{"zero width empty", "", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
			if Width(got) > tt.maxWidth && tt.maxWidth >= 0 {
				t.Errorf("result %q is wider than %d", got, tt.maxWidth)
			}
		})
	}
}

func TestChip(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name     string
		tag      string
		count    int
		maxWidth int
		want     string
	}{
		{"with count", "rust", 3, 20, "#rust (3)"},
		{"without count", "web dev", -1, 20, "#web dev"},
		{"zero count shown", "ruby", 0, 20, "#ruby (0)"},
		{"name shortened, count kept", "development", 2, 12, "#deve... (2)"},
		{"no room for frame", "development", 2, 6, "#de..."},
		{"no count, shortened", "development", -1, 8, "#deve..."},
		{"zero width", "rust", 1, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chip(tt.tag, tt.count, tt.maxWidth, cfg)
			if got != tt.want {
				t.Errorf("Chip(%q, %d, %d) = %q, want %q", tt.tag, tt.count, tt.maxWidth, got, tt.want)
			}
		})
	}
}
