package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// runMsg carries a function the completion controller scheduled back onto
// the bubbletea event loop.
type runMsg struct {
	fn func()
}

// cmdLoop implements complete.Loop by queueing tea commands. Update drains
// the queue after every controller call so the runtime executes them.
type cmdLoop struct {
	pending []tea.Cmd
}

func (l *cmdLoop) AfterFunc(d time.Duration, fn func()) {
	l.pending = append(l.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return runMsg{fn: fn}
	}))
}

func (l *cmdLoop) Go(work func() func()) {
	l.pending = append(l.pending, func() tea.Msg {
		return runMsg{fn: work()}
	})
}

// drain hands every queued command to the runtime.
func (l *cmdLoop) drain() tea.Cmd {
	if len(l.pending) == 0 {
		return nil
	}
	cmds := l.pending
	l.pending = nil
	return tea.Batch(cmds...)
}
