package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/pouch/internal/tui/layout"
)

// maxTagWidth caps a single chip on the tag board.
const maxTagWidth = 28

// View implements tea.Model.
func (a App) View() string {
	var b strings.Builder

	b.WriteString(a.renderInput())
	b.WriteString("\n")
	b.WriteString(a.renderStatus())
	b.WriteString("\n")

	dropdown := a.renderDropdown()
	dropdownLines := 0
	if dropdown != "" {
		b.WriteString(dropdown)
		b.WriteString("\n")
		dropdownLines = lipgloss.Height(dropdown)
	}

	b.WriteString(a.renderTagBoard())
	b.WriteString("\n")
	b.WriteString(a.renderResults(dropdownLines))
	b.WriteString(a.styles.Help.Render(a.renderHints(a.getContextualHints())))

	return a.styles.App.Render(b.String())
}

func (a App) renderInput() string {
	prompt := a.styles.Prompt.Render("pouch › ")
	field := a.screen.input.View()
	if a.screen.flash {
		field = a.styles.InputError.Render(a.screen.input.Value())
	}
	return prompt + a.styles.Input.Render(field)
}

func (a App) renderStatus() string {
	s := a.screen
	switch {
	case s.flash:
		return a.styles.Error.Render("unknown tag: pick one of the suggestions")
	case s.status != "":
		return a.styles.Status.Render(s.status)
	case s.query != "":
		return a.styles.Status.Render(fmt.Sprintf("%s (%d results)", s.query, len(s.results)))
	default:
		return a.styles.Status.Render(fmt.Sprintf("%d bookmarks", len(s.results)))
	}
}

func (a App) renderDropdown() string {
	s := a.screen
	if !s.dropdown {
		return ""
	}
	cfg := a.layout.Dropdown
	if len(s.suggestions) == 0 {
		return a.styles.Dropdown.Width(cfg.Width).Render(a.styles.Empty.Render("no matching tags"))
	}

	start, end := layout.CalculateVisibleListItems(cfg.MaxVisible, s.selected, len(s.suggestions))
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		name, _ := layout.TruncateText("#"+s.suggestions[i], cfg.Width-2, a.layout.Text)
		if i == s.selected {
			lines = append(lines, a.styles.DropdownSelected.Render(name))
		} else {
			lines = append(lines, a.styles.DropdownItem.Render(name))
		}
	}
	return a.styles.Dropdown.Width(cfg.Width).Render(strings.Join(lines, "\n"))
}

func (a App) renderTagBoard() string {
	s := a.screen
	if s.tagCount() == 0 {
		return a.styles.Empty.Render("no tags")
	}

	width := layout.CalculateItemWidth(a.width, a.layout.Screen)
	idx := 0
	chips := func(names []string, style lipgloss.Style) string {
		parts := make([]string, 0, len(names))
		for _, name := range names {
			count := -1
			if n, ok := s.counts[name]; ok {
				count = n
			}
			chip := layout.Chip(name, count, maxTagWidth, a.layout.Text)
			st := style
			if s.highlighted[name] {
				st = a.styles.TagHighlight
			}
			if s.focus == focusTags && idx == s.tagCursor {
				st = a.styles.TagCursor
			}
			parts = append(parts, st.Render(chip))
			idx++
		}
		return strings.Join(parts, " ")
	}

	activeNames, inactiveNames := s.panes()
	active := chips(activeNames, a.styles.TagActive)
	inactive := chips(inactiveNames, a.styles.TagInactive)

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("filter "))
	if active == "" {
		b.WriteString(a.styles.Empty.Render("none"))
	} else {
		b.WriteString(active)
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().MaxWidth(width).Render(inactive))
	return b.String()
}

func (a App) renderResults(dropdownLines int) string {
	s := a.screen
	if len(s.results) == 0 {
		return a.styles.Empty.Render("no bookmarks match") + "\n"
	}

	cfg := a.layout.Screen
	height := layout.CalculateResultsHeight(a.height, dropdownLines, cfg)
	visible := layout.CalculateVisibleResults(height, cfg)
	offset := layout.CalculateViewportOffset(s.cursor, len(s.results), visible)
	width := layout.CalculateItemWidth(a.width, cfg)

	var b strings.Builder
	for i := offset; i < len(s.results) && i < offset+visible; i++ {
		bm := s.results[i]
		title, _ := layout.TruncateText(bm.Title, width, a.layout.Text)
		url, _ := layout.TruncateText(bm.URL, width, a.layout.Text)
		if i == s.cursor && s.focus == focusResults {
			b.WriteString(a.styles.ItemSelected.Render(title))
		} else {
			b.WriteString(a.styles.Item.Render(title))
		}
		b.WriteString("\n")
		b.WriteString(a.styles.URL.Render(url))
		b.WriteString("\n")
	}
	return b.String()
}
