package complete

import (
	"context"
	"time"

	"github.com/nikbrunner/pouch/internal/api"
)

// Surface renders controller state. Implementations must not call back into
// the controller synchronously except through the mutation methods, which
// refuse re-entry.
type Surface interface {
	SetInput(text string, cursor int)
	ShowSuggestions(names []string, selected int)
	HideSuggestions()
	SetError(on bool)
	ShowResults(resp *api.SearchResponse)
	MoveTag(name string, active bool)
	HighlightTag(name string, on bool)
}

// Loop schedules work onto the single event loop that owns the controller.
type Loop interface {
	// AfterFunc runs fn on the loop once d has elapsed.
	AfterFunc(d time.Duration, fn func())
	// Go runs work off the loop and applies the func it returns on the loop.
	Go(work func() func())
}

// Backend is the remote side: tag suggestions and bookmark search.
type Backend interface {
	Suggest(ctx context.Context, fragment string, exclude []string) ([]string, error)
	Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error)
}

// Key is a navigation or commit key the controller interprets.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyTab
	KeyShiftTab
	KeyEnter
	KeySpace
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyTab:
		return "tab"
	case KeyShiftTab:
		return "shift+tab"
	case KeyEnter:
		return "enter"
	case KeySpace:
		return "space"
	case KeyEscape:
		return "esc"
	}
	return "unknown"
}
