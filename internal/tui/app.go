// Package tui is the interactive search screen: a query input with tag
// completion, the result list and the tag board.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/complete"
	"github.com/nikbrunner/pouch/internal/model"
	"github.com/nikbrunner/pouch/internal/tui/layout"
)

// App is the main bubbletea model for the search screen.
type App struct {
	ctrl   *complete.Controller
	screen *screen
	loop   *cmdLoop
	keys   KeyMap
	styles Styles
	layout layout.LayoutConfig
	yank   func(string) error
	logger *zap.Logger

	chosen *model.Bookmark

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Context context.Context   // bounds backend calls; defaults to Background
	Backend complete.Backend  // required
	Options complete.Options  // zero fields use complete.DefaultOptions
	Logger  *zap.Logger       // optional
	Keys    *KeyMap           // optional, uses default if nil
	Styles  *Styles           // optional, uses default if nil
	Layout  *layout.LayoutConfig
	Yank    func(string) error // optional, defaults to the system clipboard
	Query   string             // optional initial input
}

// NewApp creates a new App with the given parameters. The first search is
// queued and runs once the program starts.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := layout.DefaultConfig()
	if params.Layout != nil {
		cfg = *params.Layout
	}

	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	yank := params.Yank
	if yank == nil {
		yank = clipboard.WriteAll
	}

	input := textinput.New()
	input.Placeholder = `rust "best practices" #web dev`
	input.Prompt = ""
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.Width
	input.Focus()

	s := newScreen(input)
	loop := &cmdLoop{}
	ctrl := complete.NewController(ctx, params.Backend, s, loop, params.Options, logger)
	s.board = ctrl.Board()

	app := App{
		ctrl:   ctrl,
		screen: s,
		loop:   loop,
		keys:   keys,
		styles: styles,
		layout: cfg,
		yank:   yank,
		logger: logger,
		width:  80,
		height: 24,
	}

	if params.Query != "" {
		s.input.SetValue(params.Query)
		s.input.CursorEnd()
		ctrl.InputChanged(s.input.Value(), s.input.Position())
	}
	ctrl.Submit()
	return app
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loop.drain())
}

// Input returns the current text of the query input.
func (a App) Input() string {
	return a.screen.input.Value()
}

// Suggestions returns the visible dropdown entries, or nil when closed.
func (a App) Suggestions() []string {
	if !a.screen.dropdown {
		return nil
	}
	return a.screen.suggestions
}

// Results returns the bookmarks of the latest search.
func (a App) Results() []model.Bookmark {
	return a.screen.results
}

// ActiveTags returns the committed tags in commit order.
func (a App) ActiveTags() []string {
	active, _ := a.screen.panes()
	return active
}

// InactiveTags returns the known tags that are not committed.
func (a App) InactiveTags() []string {
	_, inactive := a.screen.panes()
	return inactive
}

// Cursor returns the results cursor position.
func (a App) Cursor() int {
	return a.screen.cursor
}

// Status returns the last status line message.
func (a App) Status() string {
	return a.screen.status
}

// Flashing reports whether the invalid-tag indicator is on.
func (a App) Flashing() bool {
	return a.screen.flash
}

// Controller exposes the completion state machine behind the screen.
func (a App) Controller() *complete.Controller {
	return a.ctrl
}

// Selected returns the bookmark chosen with Open, or nil.
func (a App) Selected() *model.Bookmark {
	return a.chosen
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case runMsg:
		if msg.fn != nil {
			msg.fn()
		}
		return a, a.loop.drain()

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		switch a.screen.focus {
		case focusResults:
			return a.updateResults(msg)
		case focusTags:
			return a.updateTags(msg)
		default:
			return a.updateInput(msg)
		}
	}

	var cmd tea.Cmd
	a.screen.input, cmd = a.screen.input.Update(msg)
	return a, cmd
}

// completionKey maps a key press to the controller's key set.
func (a App) completionKey(msg tea.KeyMsg) (complete.Key, bool) {
	switch {
	case key.Matches(msg, a.keys.Up):
		return complete.KeyUp, true
	case key.Matches(msg, a.keys.Down):
		return complete.KeyDown, true
	case key.Matches(msg, a.keys.Next):
		return complete.KeyTab, true
	case key.Matches(msg, a.keys.Prev):
		return complete.KeyShiftTab, true
	case key.Matches(msg, a.keys.Accept):
		return complete.KeyEnter, true
	case key.Matches(msg, a.keys.Space):
		return complete.KeySpace, true
	case key.Matches(msg, a.keys.Cancel):
		return complete.KeyEscape, true
	}
	return 0, false
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k, ok := a.completionKey(msg); ok && a.ctrl.HandleKey(k) {
		return a, a.loop.drain()
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, a.keys.Cancel):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Next), key.Matches(msg, a.keys.Down):
		if len(a.screen.results) > 0 {
			a.setFocus(focusResults)
		}

	case key.Matches(msg, a.keys.FocusTags):
		if a.screen.tagCount() > 0 {
			a.setFocus(focusTags)
		}

	case key.Matches(msg, a.keys.ClearTags):
		a.mutate(a.ctrl.ClearAll())

	case key.Matches(msg, a.keys.YankURL):
		a.yankCurrent()

	default:
		before, pos := a.screen.input.Value(), a.screen.input.Position()
		a.screen.input, cmd = a.screen.input.Update(msg)
		if a.screen.input.Value() != before || a.screen.input.Position() != pos {
			a.ctrl.InputChanged(a.screen.input.Value(), a.screen.input.Position())
		}
	}
	return a, tea.Batch(cmd, a.loop.drain())
}

func (a App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := a.screen
	switch {
	case key.Matches(msg, a.keys.ResultDown):
		if s.cursor < len(s.results)-1 {
			s.cursor++
		}

	case key.Matches(msg, a.keys.ResultUp):
		if s.cursor > 0 {
			s.cursor--
			break
		}
		a.setFocus(focusInput)

	case key.Matches(msg, a.keys.Open):
		if b := s.current(); b != nil {
			chosen := *b
			a.chosen = &chosen
			return a, tea.Quit
		}

	case key.Matches(msg, a.keys.Yank), key.Matches(msg, a.keys.YankURL):
		a.yankCurrent()

	case key.Matches(msg, a.keys.FocusTags):
		a.setFocus(focusTags)

	case key.Matches(msg, a.keys.Back):
		a.setFocus(focusInput)
	}
	return a, a.loop.drain()
}

func (a App) updateTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := a.screen
	n := s.tagCount()
	switch {
	case key.Matches(msg, a.keys.TagRight):
		if s.tagCursor < n-1 {
			s.tagCursor++
		}

	case key.Matches(msg, a.keys.TagLeft):
		if s.tagCursor > 0 {
			s.tagCursor--
		}

	case key.Matches(msg, a.keys.ToggleTag):
		if name := s.tagAt(s.tagCursor); name != "" {
			a.mutate(a.ctrl.Toggle(name))
			// the chip changed panes; keep the cursor on it
			s.followTag(name)
		}

	case key.Matches(msg, a.keys.ClearTags):
		a.mutate(a.ctrl.ClearAll())

	case key.Matches(msg, a.keys.FocusTags), key.Matches(msg, a.keys.Back):
		a.setFocus(focusInput)
	}
	return a, a.loop.drain()
}

// setFocus moves keyboard focus. Leaving the input blurs the controller so
// the dropdown closes after its grace period.
func (a App) setFocus(f focusArea) {
	s := a.screen
	if s.focus == f {
		return
	}
	if s.focus == focusInput {
		s.input.Blur()
		a.ctrl.Blur()
	}
	s.focus = f
	if f == focusInput {
		s.input.Focus()
		a.ctrl.Focus()
	}
	s.clampTagCursor()
}

func (a App) mutate(err error) {
	switch {
	case errors.Is(err, complete.ErrMutationInFlight):
		a.screen.status = "busy, try again"
	case err != nil:
		a.screen.status = err.Error()
	}
}

func (a App) yankCurrent() {
	b := a.screen.current()
	if b == nil {
		return
	}
	if err := a.yank(b.URL); err != nil {
		a.logger.Warn("clipboard write failed", zap.Error(err))
		a.screen.status = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	a.screen.status = "Copied: " + b.URL
}
