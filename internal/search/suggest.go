package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// DefaultSuggestionLimit caps Suggest output when no limit is given.
const DefaultSuggestionLimit = 10

const (
	scoreOffset = 1000
	caseBonus   = 2
	exactBonus  = 500
)

// Suggestion is a ranked tag name.
type Suggestion struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// tagNames implements fuzzy.Source over candidate tags.
type tagNames []string

func (tn tagNames) String(i int) string {
	return tn[i]
}

func (tn tagNames) Len() int {
	return len(tn)
}

// Suggest ranks candidates against fragment as ordered subsequences.
// Names in exclude never appear in the result. Candidates that do not
// contain the fragment as a subsequence are dropped. The result is sorted by
// score, then by shorter name, then alphabetically.
func Suggest(fragment string, candidates []string, exclude []string, limit int) []Suggestion {
	if fragment == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[strings.ToLower(e)] = true
	}

	pool := make(tagNames, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c)
		if c == "" || excluded[key] || seen[key] {
			continue
		}
		seen[key] = true
		pool = append(pool, c)
	}

	matches := fuzzy.FindFrom(fragment, pool)

	results := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		results = append(results, Suggestion{
			Name:  m.Str,
			Score: score(fragment, m),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Name) != len(b.Name) {
			return len(a.Name) < len(b.Name)
		}
		return a.Name < b.Name
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// score shifts the fuzzy score into the positive range and adds bonuses for
// case-exact characters and a whole-name match.
func score(fragment string, m fuzzy.Match) int {
	s := scoreOffset + m.Score

	fragRunes := []rune(fragment)
	for i, idx := range m.MatchedIndexes {
		if i >= len(fragRunes) || idx >= len(m.Str) {
			break
		}
		r, _ := utf8.DecodeRuneInString(m.Str[idx:])
		if r == fragRunes[i] {
			s += caseBonus
		}
	}

	if strings.EqualFold(fragment, m.Str) {
		s += exactBonus
	}

	if s < 1 {
		s = 1
	}
	return s
}

// Names returns the names of suggestions in ranked order.
func Names(suggestions []Suggestion) []string {
	names := make([]string, len(suggestions))
	for i, s := range suggestions {
		names[i] = s.Name
	}
	return names
}

// CanCommit reports whether fragment may be committed as a tag: it must be
// one of the names in the current suggestion result set.
func CanCommit(fragment string, suggested []string) bool {
	if strings.TrimSpace(fragment) == "" {
		return false
	}
	for _, name := range suggested {
		if strings.EqualFold(name, fragment) {
			return true
		}
	}
	return false
}
