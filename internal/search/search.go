// Package search ranks tag suggestions and evaluates parsed queries against
// a bookmark collection.
package search

import (
	"sort"
	"strings"

	"github.com/nikbrunner/pouch/internal/model"
	"github.com/nikbrunner/pouch/internal/query"
)

// Execute returns the bookmarks matching q, newest first.
// Every tag filter must be present on a bookmark; the term groups are ORed
// together and evaluated against the bookmark's searchable text.
func Execute(q query.Query, bookmarks []model.Bookmark) []model.Bookmark {
	results := make([]model.Bookmark, 0)
	for _, b := range bookmarks {
		if Matches(q, b) {
			results = append(results, b)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	return results
}

// Matches reports whether b satisfies q.
func Matches(q query.Query, b model.Bookmark) bool {
	for _, tag := range q.TagFilters {
		if !b.HasTag(tag) {
			return false
		}
	}

	if len(q.TermGroups) == 0 {
		return true
	}

	text := strings.ToLower(b.SearchableText())
	for _, g := range q.TermGroups {
		if groupMatches(g, text) {
			return true
		}
	}
	return false
}

func groupMatches(g query.TermGroup, text string) bool {
	if len(g.Terms) == 0 {
		return false
	}
	for _, t := range g.Terms {
		hit := termMatches(t, text)
		if g.Op == query.And && !hit {
			return false
		}
		if g.Op == query.Or && hit {
			return true
		}
	}
	return g.Op == query.And
}

// termMatches tests a single term against lowercased text. Exact and loose
// terms both use case-insensitive containment.
func termMatches(t query.Term, text string) bool {
	needle := strings.ToLower(t.Text)
	if !t.Exact {
		needle = strings.TrimSpace(needle)
	}
	if needle == "" {
		return true
	}
	return strings.Contains(text, needle)
}
