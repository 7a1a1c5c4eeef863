package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/pouch/internal/api"
	"github.com/nikbrunner/pouch/internal/complete"
	"github.com/nikbrunner/pouch/internal/model"
)

// focusArea is the part of the screen receiving keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusResults
	focusTags
)

// screen is the view state the completion controller draws into. It is
// shared by pointer so every copy of App sees the same state. The tag panes
// are read from the controller's board.
type screen struct {
	input textinput.Model

	suggestions []string
	selected    int
	dropdown    bool
	flash       bool

	query   string
	results []model.Bookmark
	cursor  int

	board       *complete.TagBoard
	counts      map[string]int
	highlighted map[string]bool
	tagCursor   int

	focus  focusArea
	status string
}

func newScreen(input textinput.Model) *screen {
	return &screen{
		input:       input,
		selected:    -1,
		counts:      make(map[string]int),
		highlighted: make(map[string]bool),
	}
}

func (s *screen) SetInput(text string, cursor int) {
	s.input.SetValue(text)
	s.input.SetCursor(cursor)
}

func (s *screen) ShowSuggestions(names []string, selected int) {
	s.suggestions = append(s.suggestions[:0], names...)
	s.selected = selected
	s.dropdown = true
}

func (s *screen) HideSuggestions() {
	s.dropdown = false
	s.selected = -1
}

func (s *screen) SetError(on bool) {
	s.flash = on
}

func (s *screen) ShowResults(resp *api.SearchResponse) {
	s.query = resp.Query
	s.results = resp.Bookmarks
	if s.cursor >= len(s.results) {
		s.cursor = 0
	}

	s.counts = make(map[string]int, len(resp.Tags))
	for _, tc := range resp.Tags {
		s.counts[tc.Name] = tc.Count
	}
}

// MoveTag runs after the board has moved name, so the panes are already
// current; only the tag cursor needs to stay in range.
func (s *screen) MoveTag(name string, active bool) {
	s.clampTagCursor()
}

func (s *screen) HighlightTag(name string, on bool) {
	if on {
		s.highlighted[name] = true
		return
	}
	delete(s.highlighted, name)
}

// panes returns the active tags in commit order and the inactive ones
// alphabetically.
func (s *screen) panes() (active, inactive []string) {
	if s.board == nil {
		return nil, nil
	}
	return s.board.Active(), s.board.Inactive()
}

// tagCount is the number of chips across both panes.
func (s *screen) tagCount() int {
	if s.board == nil {
		return 0
	}
	return len(s.board.Known())
}

// tags returns the active pane followed by the inactive pane.
func (s *screen) tags() []string {
	active, inactive := s.panes()
	return append(active, inactive...)
}

func (s *screen) tagAt(i int) string {
	tags := s.tags()
	if i < 0 || i >= len(tags) {
		return ""
	}
	return tags[i]
}

func (s *screen) tagIndex(name string) int {
	return indexOf(s.tags(), name)
}

// followTag puts the tag cursor on name wherever it now sits.
func (s *screen) followTag(name string) {
	if i := s.tagIndex(name); i >= 0 {
		s.tagCursor = i
	}
}

func (s *screen) clampTagCursor() {
	n := s.tagCount()
	if s.tagCursor >= n {
		s.tagCursor = n - 1
	}
	if s.tagCursor < 0 {
		s.tagCursor = 0
	}
}

// current returns the bookmark under the results cursor.
func (s *screen) current() *model.Bookmark {
	if s.cursor < 0 || s.cursor >= len(s.results) {
		return nil
	}
	return &s.results[s.cursor]
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
