package layout

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// Width returns the number of terminal cells s occupies. Escape sequences
// take no space and wide runes take two.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText shortens text to at most maxWidth cells, ending it with the
// configured ellipsis. It reports whether anything was cut.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", text != ""
	}
	if Width(text) <= maxWidth {
		return text, false
	}
	if Width(cfg.Ellipsis) >= maxWidth {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// Chip renders a tag as "#name (count)" in at most maxWidth cells. A
// negative count drops the suffix. The name is shortened first so the count
// stays readable: Chip("development", 2, 12, cfg) is "#deve... (2)".
func Chip(name string, count, maxWidth int, cfg TextConfig) string {
	if maxWidth <= 0 {
		return ""
	}
	prefix, suffix := "#", ""
	if count >= 0 {
		suffix = fmt.Sprintf(" (%d)", count)
	}

	whole := prefix + name + suffix
	if Width(whole) <= maxWidth {
		return whole
	}

	frame := Width(prefix + suffix)
	if frame+Width(cfg.Ellipsis) >= maxWidth {
		s, _ := TruncateText(whole, maxWidth, cfg)
		return s
	}
	short, _ := TruncateText(name, maxWidth-frame, cfg)
	return prefix + short + suffix
}
