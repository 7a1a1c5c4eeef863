package complete

import (
	"container/list"
	"sort"

	"github.com/nikbrunner/pouch/internal/query"
)

// TagBoard mirrors the committed tags onto two displays: active tags in
// commit order and inactive tags in alphabetical order. Every known name is
// in exactly one of them. Activation and deactivation relocate a single
// entry and notify the surface; nothing is rebuilt.
type TagBoard struct {
	surface Surface

	known  []string // sorted
	active *list.List
	index  map[string]*list.Element
}

// NewTagBoard creates an empty board reporting to s.
func NewTagBoard(s Surface) *TagBoard {
	return &TagBoard{
		surface: s,
		active:  list.New(),
		index:   make(map[string]*list.Element),
	}
}

// SetKnown merges names into the known set. New names start inactive.
func (b *TagBoard) SetKnown(names []string) {
	for _, n := range names {
		b.learn(query.NormalizeTag(n))
	}
}

// learn inserts name into the sorted known slice and reports whether it was
// new.
func (b *TagBoard) learn(name string) bool {
	if name == "" {
		return false
	}
	i := sort.SearchStrings(b.known, name)
	if i < len(b.known) && b.known[i] == name {
		return false
	}
	b.known = append(b.known, "")
	copy(b.known[i+1:], b.known[i:])
	b.known[i] = name
	return true
}

// Activate moves name to the end of the active group. Unknown names are
// learned first. Returns false if it was already active.
func (b *TagBoard) Activate(name string) bool {
	name = query.NormalizeTag(name)
	if name == "" {
		return false
	}
	b.learn(name)
	if _, ok := b.index[name]; ok {
		return false
	}
	b.index[name] = b.active.PushBack(name)
	b.surface.MoveTag(name, true)
	b.surface.HighlightTag(name, true)
	return true
}

// Deactivate returns name to the inactive group. Returns false if it was not
// active.
func (b *TagBoard) Deactivate(name string) bool {
	name = query.NormalizeTag(name)
	el, ok := b.index[name]
	if !ok {
		return false
	}
	b.active.Remove(el)
	delete(b.index, name)
	b.surface.MoveTag(name, false)
	b.surface.HighlightTag(name, false)
	return true
}

// Active returns the active names in commit order.
func (b *TagBoard) Active() []string {
	out := make([]string, 0, b.active.Len())
	for el := b.active.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(string))
	}
	return out
}

// Inactive returns the inactive names alphabetically.
func (b *TagBoard) Inactive() []string {
	out := make([]string, 0, len(b.known)-len(b.index))
	for _, n := range b.known {
		if _, ok := b.index[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// Known returns every known name alphabetically.
func (b *TagBoard) Known() []string {
	return append([]string(nil), b.known...)
}
