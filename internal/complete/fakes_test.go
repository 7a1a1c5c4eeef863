package complete

import (
	"context"
	"sort"
	"time"

	"github.com/nikbrunner/pouch/internal/api"
	"github.com/nikbrunner/pouch/internal/model"
)

// manualLoop is a Loop driven by the test: timers fire on Advance and
// off-loop work runs on Flush.
type manualLoop struct {
	now    time.Duration
	seq    int
	timers []manualTimer
	jobs   []func() func()
}

type manualTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

func (l *manualLoop) AfterFunc(d time.Duration, fn func()) {
	l.seq++
	l.timers = append(l.timers, manualTimer{at: l.now + d, seq: l.seq, fn: fn})
}

func (l *manualLoop) Go(work func() func()) {
	l.jobs = append(l.jobs, work)
}

// Advance moves the clock forward, firing due timers in order.
func (l *manualLoop) Advance(d time.Duration) {
	target := l.now + d
	for {
		sort.SliceStable(l.timers, func(i, j int) bool {
			if l.timers[i].at != l.timers[j].at {
				return l.timers[i].at < l.timers[j].at
			}
			return l.timers[i].seq < l.timers[j].seq
		})
		if len(l.timers) == 0 || l.timers[0].at > target {
			break
		}
		t := l.timers[0]
		l.timers = l.timers[1:]
		l.now = t.at
		t.fn()
	}
	l.now = target
}

// Flush runs queued off-loop work and applies the results.
func (l *manualLoop) Flush() {
	for len(l.jobs) > 0 {
		job := l.jobs[0]
		l.jobs = l.jobs[1:]
		job()()
	}
}

// Settle advances past the debounce and applies all pending work.
func (l *manualLoop) Settle() {
	l.Advance(300 * time.Millisecond)
	l.Flush()
}

type fakeBackend struct {
	suggestions map[string][]string
	suggestErr  error
	searchErr   error

	suggestCalls []suggestCall
	searches     []api.SearchRequest
}

type suggestCall struct {
	fragment string
	exclude  []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		suggestions: map[string][]string{
			"r":    {"react", "ruby", "rust"},
			"ru":   {"ruby", "rust"},
			"rus":  {"rust"},
			"rust": {"rust"},
			"go":   {"go", "golang"},
			"web":  {"web dev"},
		},
	}
}

func (b *fakeBackend) Suggest(_ context.Context, fragment string, exclude []string) ([]string, error) {
	b.suggestCalls = append(b.suggestCalls, suggestCall{fragment: fragment, exclude: exclude})
	if b.suggestErr != nil {
		return nil, b.suggestErr
	}
	skip := map[string]bool{}
	for _, e := range exclude {
		skip[e] = true
	}
	var out []string
	for _, name := range b.suggestions[fragment] {
		if !skip[name] {
			out = append(out, name)
		}
	}
	return out, nil
}

func (b *fakeBackend) Search(_ context.Context, req api.SearchRequest) (*api.SearchResponse, error) {
	b.searches = append(b.searches, req)
	if b.searchErr != nil {
		return nil, b.searchErr
	}
	tags := make([]model.TagCount, 0, len(req.Tags))
	for _, t := range req.Tags {
		tags = append(tags, model.TagCount{Name: t, Count: 1})
	}
	return &api.SearchResponse{Query: req.GeneralText, Tags: tags}, nil
}

// recordingSurface keeps the rendered state and a log of tag moves.
type recordingSurface struct {
	text        string
	cursor      int
	suggestions []string
	selected    int
	visible     bool
	errorOn     bool
	results     []*api.SearchResponse
	active      map[string]bool
	highlighted map[string]bool
	moves       []string
	showCalls   int

	onMove func(name string, active bool)
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{
		selected:    -1,
		active:      map[string]bool{},
		highlighted: map[string]bool{},
	}
}

func (s *recordingSurface) SetInput(text string, cursor int) {
	s.text = text
	s.cursor = cursor
}

func (s *recordingSurface) ShowSuggestions(names []string, selected int) {
	s.suggestions = append([]string(nil), names...)
	s.selected = selected
	s.visible = true
	s.showCalls++
}

func (s *recordingSurface) HideSuggestions() {
	s.visible = false
	s.selected = -1
}

func (s *recordingSurface) SetError(on bool) {
	s.errorOn = on
}

func (s *recordingSurface) ShowResults(resp *api.SearchResponse) {
	s.results = append(s.results, resp)
}

func (s *recordingSurface) MoveTag(name string, active bool) {
	if active {
		s.moves = append(s.moves, "+"+name)
	} else {
		s.moves = append(s.moves, "-"+name)
	}
	s.active[name] = active
	if s.onMove != nil {
		s.onMove(name, active)
	}
}

func (s *recordingSurface) HighlightTag(name string, on bool) {
	s.highlighted[name] = on
}
