package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Hint is one "key:desc" entry of the bottom bar.
type Hint struct {
	Key  string
	Desc string
}

// HintSet groups hints; they render Nav, then Action, then System.
type HintSet struct {
	Nav    []Hint
	Action []Hint
	System []Hint
}

// All returns the hints in display order.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	return append(result, h.System...)
}

// bind labels a binding with its help key so remapped keys show up in the
// bar. An empty desc keeps the binding's own help text.
func bind(b key.Binding, desc string) Hint {
	h := b.Help()
	if desc == "" {
		desc = h.Desc
	}
	return Hint{Key: h.Key, Desc: desc}
}

// pair folds two bindings into one hint, e.g. "k/j:move".
func pair(a, b key.Binding, desc string) Hint {
	first := strings.SplitN(a.Help().Key, "/", 2)[0]
	second := strings.SplitN(b.Help().Key, "/", 2)[0]
	return Hint{Key: first + "/" + second, Desc: desc}
}

func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, " ")
}

// getContextualHints picks the hints for the focused area.
func (a App) getContextualHints() HintSet {
	k := a.keys
	switch a.screen.focus {
	case focusResults:
		return HintSet{
			Nav:    []Hint{pair(k.ResultUp, k.ResultDown, "move")},
			Action: []Hint{bind(k.Open, ""), bind(k.Yank, "")},
			System: []Hint{bind(k.Back, "back")},
		}
	case focusTags:
		return HintSet{
			Nav:    []Hint{pair(k.TagLeft, k.TagRight, "move")},
			Action: []Hint{bind(k.ToggleTag, "toggle"), bind(k.ClearTags, "clear")},
			System: []Hint{bind(k.Back, "back")},
		}
	}

	if a.screen.dropdown {
		return HintSet{
			Nav:    []Hint{pair(k.Up, k.Down, "select")},
			Action: []Hint{bind(k.Accept, "commit"), bind(k.Space, "")},
			System: []Hint{bind(k.Cancel, "")},
		}
	}
	return HintSet{
		Nav:    []Hint{bind(k.Next, "results"), bind(k.FocusTags, "")},
		Action: []Hint{bind(k.Accept, "search"), {Key: "#", Desc: "tag"}, bind(k.ClearTags, "")},
		System: []Hint{bind(k.Cancel, "quit")},
	}
}
