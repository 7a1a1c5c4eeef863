// Package complete drives the search input: it tracks the '#tag' being
// typed, fetches and navigates suggestions, commits tags and keeps the
// committed set, the input text and the tag displays in step.
package complete

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/api"
	"github.com/nikbrunner/pouch/internal/query"
	"github.com/nikbrunner/pouch/internal/search"
)

// ErrMutationInFlight is returned when a commit, remove or clear arrives
// while another one is still being applied.
var ErrMutationInFlight = errors.New("tag mutation already in progress")

// DropdownMode is the visibility state of the suggestion list.
type DropdownMode int

const (
	// DropdownHidden is closed; it opens when suggestions arrive.
	DropdownHidden DropdownMode = iota
	// DropdownOpen shows suggestions, with or without a selection.
	DropdownOpen
	// DropdownCanceled is closed and stays closed until a new tag context
	// begins or Tab reopens it.
	DropdownCanceled
)

func (m DropdownMode) String() string {
	switch m {
	case DropdownOpen:
		return "open"
	case DropdownCanceled:
		return "canceled"
	}
	return "hidden"
}

// Options holds the controller timers.
type Options struct {
	Debounce   time.Duration
	ErrorFlash time.Duration
	BlurGrace  time.Duration
}

// DefaultOptions returns the stock timer values.
func DefaultOptions() Options {
	return Options{
		Debounce:   300 * time.Millisecond,
		ErrorFlash: 1200 * time.Millisecond,
		BlurGrace:  150 * time.Millisecond,
	}
}

// State is a snapshot of the controller.
type State struct {
	Text        string
	Cursor      int
	Context     *TagContext
	Dropdown    DropdownMode
	Suggestions []string
	Selected    int
	Committed   []string
	Error       bool
}

// Controller is the tag-completion state machine. All methods must be called
// from the loop that owns it.
type Controller struct {
	ctx     context.Context
	backend Backend
	surface Surface
	loop    Loop
	board   *TagBoard
	opts    Options
	logger  *zap.Logger

	text   string
	cursor int
	tag    *TagContext

	mode          DropdownMode
	items         []string
	itemsGen      uint64
	selected      int
	pendingSelect int
	commitGen     uint64

	committed []string
	lastFree  string
	flashing  bool

	suggestGen uint64
	searchGen  uint64
	flashGen   uint64
	blurGen    uint64

	mu sync.Mutex
}

// NewController wires a controller to its collaborators. ctx bounds every
// backend call.
func NewController(ctx context.Context, backend Backend, surface Surface, loop Loop, opts Options, logger *zap.Logger) *Controller {
	d := DefaultOptions()
	if opts.Debounce <= 0 {
		opts.Debounce = d.Debounce
	}
	if opts.ErrorFlash <= 0 {
		opts.ErrorFlash = d.ErrorFlash
	}
	if opts.BlurGrace <= 0 {
		opts.BlurGrace = d.BlurGrace
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		ctx:      ctx,
		backend:  backend,
		surface:  surface,
		loop:     loop,
		board:    NewTagBoard(surface),
		opts:     opts,
		logger:   logger,
		selected: -1,
	}
}

// Board returns the view synchronizer fed by this controller.
func (c *Controller) Board() *TagBoard {
	return c.board
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := State{
		Text:        c.text,
		Cursor:      c.cursor,
		Dropdown:    c.mode,
		Suggestions: append([]string(nil), c.items...),
		Selected:    c.selected,
		Committed:   append([]string(nil), c.committed...),
		Error:       c.flashing,
	}
	if c.tag != nil {
		tc := *c.tag
		s.Context = &tc
	}
	return s
}

// InputChanged records a text or cursor change from the input widget.
func (c *Controller) InputChanged(text string, cursor int) {
	edited := text != c.text
	c.text = text
	c.cursor = cursor
	c.refreshContext(edited)

	if free := query.StripTags(text); free != c.lastFree {
		c.scheduleSearch()
	}
}

// refreshContext recomputes the tag context. Leaving a context through an
// edit lifts the cancel; merely moving the cursor away and back does not.
func (c *Controller) refreshContext(edited bool) {
	tc, ok := FindTagContext(c.text, c.cursor)
	if !ok {
		if c.tag != nil {
			c.tag = nil
			c.suggestGen++
			c.pendingSelect = 0
		}
		if c.mode == DropdownOpen {
			c.surface.HideSuggestions()
		}
		c.items = nil
		c.selected = -1
		if c.mode == DropdownOpen || edited {
			c.mode = DropdownHidden
		}
		return
	}

	if c.tag != nil && *c.tag == tc {
		return
	}
	textChanged := c.tag == nil || c.tag.Text != tc.Text
	c.tag = &tc
	c.suggestGen++
	c.pendingSelect = 0

	if c.mode == DropdownOpen && c.selected >= 0 {
		c.selected = -1
		c.surface.ShowSuggestions(c.items, -1)
	}
	if c.mode == DropdownCanceled {
		// the hidden list no longer describes the fragment
		if textChanged {
			c.items = nil
			c.selected = -1
		}
		return
	}
	c.scheduleSuggest()
}

func (c *Controller) scheduleSuggest() {
	gen := c.suggestGen
	c.loop.AfterFunc(c.opts.Debounce, func() {
		if gen != c.suggestGen || c.tag == nil {
			return
		}
		c.fetchSuggestions()
	})
}

// fetchSuggestions requests suggestions for the current context under the
// current generation.
func (c *Controller) fetchSuggestions() {
	gen := c.suggestGen
	fragment := c.tag.Text
	exclude := append([]string(nil), c.committed...)

	c.loop.Go(func() func() {
		names, err := c.backend.Suggest(c.ctx, fragment, exclude)
		return func() {
			if gen != c.suggestGen {
				c.logger.Debug("dropping stale suggestions", zap.String("fragment", fragment), zap.Uint64("gen", gen))
				return
			}
			if err != nil {
				c.pendingSelect = 0
				c.logger.Warn("suggestion fetch failed", zap.String("fragment", fragment), zap.Uint64("gen", gen), zap.Error(err))
				if gen == c.commitGen {
					c.flashError()
				}
				return
			}
			c.applySuggestions(gen, names)
		}
	})
}

func (c *Controller) applySuggestions(gen uint64, names []string) {
	c.items = names
	c.itemsGen = gen
	c.selected = -1

	if gen == c.commitGen {
		c.pendingSelect = 0
		if c.commitFragment() {
			return
		}
	}

	if len(names) == 0 || c.mode == DropdownCanceled {
		if c.mode == DropdownOpen {
			c.mode = DropdownHidden
			c.surface.HideSuggestions()
		}
		c.pendingSelect = 0
		return
	}

	c.mode = DropdownOpen
	if dir := c.pendingSelect; dir != 0 {
		c.pendingSelect = 0
		c.move(dir)
		return
	}
	c.surface.ShowSuggestions(c.items, -1)
}

// HandleKey interprets a key press. It returns false when the key should
// fall through to the input widget or the rest of the UI.
func (c *Controller) HandleKey(k Key) bool {
	switch k {
	case KeyDown:
		return c.arrow(1)
	case KeyUp:
		return c.arrow(-1)
	case KeyTab:
		return c.tab(1)
	case KeyShiftTab:
		return c.tab(-1)
	case KeyEnter:
		return c.enter()
	case KeySpace:
		return c.space()
	case KeyEscape:
		return c.escape()
	}
	return false
}

func (c *Controller) arrow(dir int) bool {
	if c.mode != DropdownOpen || len(c.items) == 0 {
		return false
	}
	c.move(dir)
	return true
}

func (c *Controller) tab(dir int) bool {
	if c.tag == nil {
		return false
	}
	if c.mode == DropdownOpen && len(c.items) > 0 {
		c.move(dir)
		return true
	}

	// explicit reopen lifts a cancel
	c.mode = DropdownHidden
	if len(c.items) > 0 && c.itemsGen == c.suggestGen {
		c.mode = DropdownOpen
		c.move(dir)
		return true
	}
	c.suggestGen++
	c.pendingSelect = dir
	c.fetchSuggestions()
	return true
}

// move steps the selection with wraparound and previews it in the input.
func (c *Controller) move(dir int) {
	n := len(c.items)
	switch {
	case c.selected < 0 && dir > 0:
		c.selected = 0
	case c.selected < 0:
		c.selected = n - 1
	default:
		c.selected = ((c.selected+dir)%n + n) % n
	}

	name := c.items[c.selected]
	repl := query.FormatTag(name)
	c.text = replaceSpan(c.text, c.tag.Start, c.tag.End, repl)
	end := c.tag.Start + len([]rune(repl))
	c.cursor = end
	c.tag = &TagContext{Text: name, Start: c.tag.Start, End: end}

	// the preview is not an edit: fetches scheduled for the typed fragment
	// are void, while the list stays current for Tab and Escape
	c.suggestGen++
	c.itemsGen = c.suggestGen

	c.surface.SetInput(c.text, c.cursor)
	c.surface.ShowSuggestions(c.items, c.selected)
}

func (c *Controller) enter() bool {
	if c.tag == nil {
		c.Submit()
		return true
	}
	if c.mode == DropdownOpen && c.selected >= 0 {
		c.commit(c.items[c.selected])
		return true
	}
	c.commitLiteral()
	return true
}

func (c *Controller) space() bool {
	if c.tag == nil || c.mode == DropdownCanceled {
		return false
	}
	// a space between quotes belongs to the tag name
	if inQuotes(c.text, *c.tag, c.cursor) {
		return false
	}
	c.commitLiteral()
	return true
}

// commitLiteral commits the typed tag text if it is one of the suggestions
// for it and flashes an error otherwise. When the list on hand was fetched
// for an older fragment, a fresh one is requested and the check runs once it
// arrives.
func (c *Controller) commitLiteral() {
	if c.itemsGen != c.suggestGen {
		c.suggestGen++
		c.commitGen = c.suggestGen
		c.pendingSelect = 0
		c.fetchSuggestions()
		return
	}
	c.commitFragment()
}

// commitFragment validates the context text against the current items.
func (c *Controller) commitFragment() bool {
	fragment := c.tag.Text
	if !search.CanCommit(fragment, c.items) {
		c.logger.Debug("invalid tag commit", zap.String("tag", fragment), zap.Strings("suggestions", c.items))
		c.flashError()
		return false
	}
	for _, name := range c.items {
		if strings.EqualFold(name, fragment) {
			return c.commit(name)
		}
	}
	return false
}

// commit replaces the context with name and reports whether it landed.
func (c *Controller) commit(name string) bool {
	if err := c.commitInput(name); err != nil {
		c.logger.Debug("tag commit refused", zap.String("tag", name), zap.Error(err))
		return false
	}
	return true
}

func (c *Controller) escape() bool {
	switch {
	case c.mode == DropdownOpen && c.selected >= 0:
		c.selected = -1
		c.surface.ShowSuggestions(c.items, -1)
		return true
	case c.mode == DropdownOpen:
		c.surface.HideSuggestions()
		fallthrough
	case c.mode == DropdownHidden && c.tag != nil:
		// a pending fetch must not reopen the list
		c.mode = DropdownCanceled
		c.selected = -1
		c.pendingSelect = 0
		fresh := len(c.items) > 0 && c.itemsGen == c.suggestGen
		c.suggestGen++
		if fresh {
			c.itemsGen = c.suggestGen
		}
		return true
	}
	return false
}

// Blur closes the dropdown after the grace delay so a click on a suggestion
// can still land.
func (c *Controller) Blur() {
	c.blurGen++
	gen := c.blurGen
	c.loop.AfterFunc(c.opts.BlurGrace, func() {
		if gen != c.blurGen {
			return
		}
		c.suggestGen++
		c.pendingSelect = 0
		c.selected = -1
		if c.mode == DropdownOpen {
			c.mode = DropdownHidden
			c.surface.HideSuggestions()
		}
	})
}

// Focus cancels a pending blur.
func (c *Controller) Focus() {
	c.blurGen++
}

// ClickSuggestion commits the i-th visible suggestion.
func (c *Controller) ClickSuggestion(i int) {
	if c.mode != DropdownOpen || i < 0 || i >= len(c.items) || c.tag == nil {
		return
	}
	c.blurGen++
	c.commit(c.items[i])
}

// commitInput removes the in-progress span from the input and commits name.
func (c *Controller) commitInput(name string) error {
	if !c.mu.TryLock() {
		return ErrMutationInFlight
	}
	defer c.mu.Unlock()

	runes := []rune(c.text)
	before := string(runes[:c.tag.Start])
	after := string(runes[c.tag.End:])
	if (before == "" || strings.HasSuffix(before, " ")) && strings.HasPrefix(after, " ") {
		after = after[1:]
	}
	c.text = before + after
	c.cursor = c.tag.Start
	c.tag = nil
	c.suggestGen++
	c.surface.SetInput(c.text, c.cursor)

	c.addTag(name)
	return nil
}

// Commit adds tag to the committed set from outside the input, e.g. a click
// in the tag cloud.
func (c *Controller) Commit(tag string) error {
	if !c.mu.TryLock() {
		return ErrMutationInFlight
	}
	defer c.mu.Unlock()
	c.addTag(tag)
	return nil
}

// Remove drops tag from the committed set.
func (c *Controller) Remove(tag string) error {
	if !c.mu.TryLock() {
		return ErrMutationInFlight
	}
	defer c.mu.Unlock()
	c.removeTag(tag)
	return nil
}

// Toggle removes tag if committed and commits it otherwise.
func (c *Controller) Toggle(tag string) error {
	if !c.mu.TryLock() {
		return ErrMutationInFlight
	}
	defer c.mu.Unlock()
	if c.isCommitted(query.NormalizeTag(tag)) {
		c.removeTag(tag)
	} else {
		c.addTag(tag)
	}
	return nil
}

// ClearAll empties the committed set.
func (c *Controller) ClearAll() error {
	if !c.mu.TryLock() {
		return ErrMutationInFlight
	}
	defer c.mu.Unlock()
	if len(c.committed) == 0 {
		return nil
	}
	for _, name := range c.committed {
		c.board.Deactivate(name)
	}
	c.committed = nil
	c.scheduleSearch()
	return nil
}

func (c *Controller) addTag(tag string) {
	name := query.NormalizeTag(tag)
	if name == "" {
		return
	}
	if !c.isCommitted(name) {
		c.committed = append(c.committed, name)
	}

	if c.mode == DropdownOpen {
		c.surface.HideSuggestions()
	}
	c.mode = DropdownHidden
	c.items = nil
	c.selected = -1
	c.pendingSelect = 0
	c.clearFlash()

	c.scheduleSearch()
	c.board.Activate(name)
}

func (c *Controller) removeTag(tag string) {
	name := query.NormalizeTag(tag)
	for i, t := range c.committed {
		if t == name {
			c.committed = append(c.committed[:i], c.committed[i+1:]...)
			c.scheduleSearch()
			c.board.Deactivate(name)
			return
		}
	}
}

func (c *Controller) isCommitted(name string) bool {
	for _, t := range c.committed {
		if t == name {
			return true
		}
	}
	return false
}

// searchRequest snapshots the free text and committed tags.
func (c *Controller) searchRequest() api.SearchRequest {
	c.lastFree = query.StripTags(c.text)
	return api.NewSearchRequest(c.text, c.committed)
}

// scheduleSearch debounces a search for the current state. A newer schedule
// supersedes an older one.
func (c *Controller) scheduleSearch() {
	c.searchGen++
	gen := c.searchGen
	req := c.searchRequest()
	c.loop.AfterFunc(c.opts.Debounce, func() {
		if gen != c.searchGen {
			return
		}
		c.runSearch(gen, req)
	})
}

// Submit searches the current state immediately.
func (c *Controller) Submit() {
	c.searchGen++
	c.runSearch(c.searchGen, c.searchRequest())
}

func (c *Controller) runSearch(gen uint64, req api.SearchRequest) {
	c.loop.Go(func() func() {
		resp, err := c.backend.Search(c.ctx, req)
		return func() {
			if gen != c.searchGen {
				c.logger.Debug("dropping stale search", zap.Uint64("gen", gen))
				return
			}
			if err != nil {
				c.logger.Warn("search fetch failed", zap.Uint64("gen", gen), zap.Error(err))
				return
			}
			names := make([]string, len(resp.Tags))
			for i, tc := range resp.Tags {
				names[i] = tc.Name
			}
			c.board.SetKnown(names)
			c.surface.ShowResults(resp)
		}
	})
}

func (c *Controller) flashError() {
	c.flashGen++
	gen := c.flashGen
	c.flashing = true
	c.surface.SetError(true)
	c.loop.AfterFunc(c.opts.ErrorFlash, func() {
		if gen != c.flashGen {
			return
		}
		c.clearFlash()
	})
}

func (c *Controller) clearFlash() {
	if !c.flashing {
		return
	}
	c.flashing = false
	c.flashGen++
	c.surface.SetError(false)
}
