package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/pouch/internal/model"
)

func twoResults() []model.Bookmark {
	return []model.Bookmark{
		{ID: "b1", Title: "GitHub", URL: "https://github.com", Tags: []string{"git", "web dev"}},
		{ID: "b2", Title: "GitLab", URL: "https://gitlab.com"},
	}
}

func press(p Picker, msg tea.KeyMsg) (Picker, tea.Cmd) {
	updated, cmd := p.Update(msg)
	return updated.(Picker), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_Navigate(t *testing.T) {
	p := New(twoResults(), "git")
	assert.Equal(t, p.cursor, 0)

	p, _ = press(p, runes("j"))
	assert.Equal(t, p.cursor, 1)

	// stays at the last item
	p, _ = press(p, runes("j"))
	assert.Equal(t, p.cursor, 1)

	p, _ = press(p, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, p.cursor, 0)

	p, _ = press(p, runes("k"))
	assert.Equal(t, p.cursor, 0)

	p, _ = press(p, runes("G"))
	assert.Equal(t, p.cursor, 1)
	p, _ = press(p, runes("g"))
	assert.Equal(t, p.cursor, 0)
}

func TestPicker_SelectItem(t *testing.T) {
	p := New(twoResults(), "git")
	p, _ = press(p, tea.KeyMsg{Type: tea.KeyDown})

	p, cmd := press(p, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Assert(t, cmd != nil)
	assert.Assert(t, p.SelectedBookmark() != nil)
	assert.Equal(t, p.SelectedBookmark().ID, "b2")
	assert.Assert(t, !p.Cancelled())
}

func TestPicker_Cancel(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, runes("q")} {
		p := New(twoResults(), "git")

		p, cmd := press(p, msg)

		assert.Assert(t, cmd != nil)
		assert.Assert(t, p.Cancelled())
		assert.Assert(t, p.SelectedBookmark() == nil)
	}
}

func TestPicker_View(t *testing.T) {
	p := New(twoResults(), "#git hub")

	view := p.View()

	assert.Assert(t, is.Contains(view, "Search: #git hub (2 results)"))
	assert.Assert(t, is.Contains(view, "#git #web dev"))
	assert.Assert(t, is.Contains(view, "https://gitlab.com"))
}

func TestPicker_ViewScrollsToCursor(t *testing.T) {
	var results []model.Bookmark
	for i := 0; i < 30; i++ {
		results = append(results, model.Bookmark{ID: string(rune('a' + i%26)), Title: strings.Repeat("x", i+1), URL: "https://example.com"})
	}
	p := New(results, "x")
	p, _ = press(p, runes("G"))

	view := p.View()

	assert.Assert(t, is.Contains(view, strings.Repeat("x", 30)))
	assert.Assert(t, !strings.Contains(view, "> x\n"))
}
