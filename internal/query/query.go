// Package query parses the bookmark search language: free terms combined
// with OR by default, AND via the keyword, quoted exact phrases and #tag
// filters.
package query

import (
	"strings"
	"unicode"
)

// Combinator joins the terms of a group.
type Combinator int

const (
	Or Combinator = iota
	And
)

func (c Combinator) String() string {
	if c == And {
		return "AND"
	}
	return "OR"
}

// Term is a single general search term.
type Term struct {
	Text  string `json:"text"`
	Exact bool   `json:"exact"` // originally quoted
}

// TermGroup is a run of terms joined by one combinator.
type TermGroup struct {
	Op    Combinator `json:"op"`
	Terms []Term     `json:"terms"`
}

// Query is the structured form of a raw search string.
// Groups are ORed together; tag filters are ANDed with the groups.
type Query struct {
	TagFilters []string    `json:"tagFilters"`
	TermGroups []TermGroup `json:"termGroups"`
}

// IsEmpty reports whether the query matches everything.
func (q Query) IsEmpty() bool {
	return len(q.TagFilters) == 0 && len(q.TermGroups) == 0
}

// HasTag reports whether name is among the tag filters.
func (q Query) HasTag(name string) bool {
	name = NormalizeTag(name)
	for _, t := range q.TagFilters {
		if t == name {
			return true
		}
	}
	return false
}

// WithTags returns a copy of q with the given tags added to its filters.
// Names are normalized; empty and duplicate names are skipped.
func (q Query) WithTags(tags ...string) Query {
	out := Query{
		TagFilters: append([]string(nil), q.TagFilters...),
		TermGroups: q.TermGroups,
	}
	for _, t := range tags {
		name := NormalizeTag(t)
		if name == "" || out.HasTag(name) {
			continue
		}
		out.TagFilters = append(out.TagFilters, name)
	}
	return out
}

// String renders q in the search language. Parsing the result yields an
// equal query.
func (q Query) String() string {
	var parts []string
	for _, t := range q.TagFilters {
		parts = append(parts, FormatTag(t))
	}
	for _, g := range q.TermGroups {
		terms := make([]string, len(g.Terms))
		for i, term := range g.Terms {
			terms[i] = formatTerm(term)
		}
		if g.Op == And {
			parts = append(parts, strings.Join(terms, " AND "))
		} else {
			parts = append(parts, terms...)
		}
	}
	return strings.Join(parts, " ")
}

// NormalizeTag lowercases a tag name, trims it and collapses inner
// whitespace. The result is empty when the name carries no text.
func NormalizeTag(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// FormatTag renders a tag name as a '#' token, quoting names that hold
// whitespace or open with a quote character.
func FormatTag(name string) string {
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 || strings.HasPrefix(name, `"`) || strings.HasPrefix(name, "'") {
		return "#" + quote(name)
	}
	return "#" + name
}

func formatTerm(t Term) string {
	if t.Exact {
		return quote(t.Text)
	}
	return t.Text
}

// quote wraps s in whichever quote character it does not contain. The
// language has no escapes, so when s holds both its double quotes are
// turned into single ones.
func quote(s string) string {
	switch {
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	case !strings.Contains(s, "'"):
		return "'" + s + "'"
	}
	return `"` + strings.ReplaceAll(s, `"`, "'") + `"`
}
