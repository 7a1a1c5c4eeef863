package search

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

var sampleTags = []string{
	"go", "golang", "rust", "react", "react-native", "web dev", "web-framework",
	"webassembly", "graphql", "git", "typescript",
}

func TestSuggest_EmptyFragment(t *testing.T) {
	assert.Equal(t, len(Suggest("", sampleTags, nil, 10)), 0)
}

func TestSuggest_DropsNonSubsequences(t *testing.T) {
	got := Suggest("rst", sampleTags, nil, 10)

	assert.DeepEqual(t, Names(got), []string{"rust"})
}

func TestSuggest_NeverReturnsExcluded(t *testing.T) {
	got := Suggest("re", sampleTags, []string{"React", "rust"}, 10)

	for _, s := range got {
		assert.Assert(t, s.Name != "react" && s.Name != "rust", "excluded %q returned", s.Name)
	}
	assert.Assert(t, is.Contains(Names(got), "react-native"))
}

func TestSuggest_ScoresDescending(t *testing.T) {
	got := Suggest("g", sampleTags, nil, 0)

	assert.Assert(t, len(got) > 1)
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		assert.Assert(t, prev.Score >= cur.Score, "%v before %v", prev, cur)
		if prev.Score == cur.Score {
			if len(prev.Name) == len(cur.Name) {
				assert.Assert(t, prev.Name < cur.Name)
			} else {
				assert.Assert(t, len(prev.Name) < len(cur.Name))
			}
		}
		assert.Assert(t, cur.Score > 0)
	}
}

func TestSuggest_ExactBeatsSubsequence(t *testing.T) {
	candidates := []string{"gopher", "go", "golang", "good"}
	got := Suggest("go", candidates, nil, 10)

	assert.Equal(t, got[0].Name, "go")

	// the same candidate scores higher for its full name than for a partial fragment
	full := Suggest("golang", []string{"golang"}, nil, 1)
	partial := Suggest("glng", []string{"golang"}, nil, 1)
	assert.Assert(t, full[0].Score >= partial[0].Score)
}

func TestSuggest_Limit(t *testing.T) {
	many := make([]string, 0, 30)
	for _, c := range "abcdefghijklmnopqrstuvwxyz" {
		many = append(many, "tag"+string(c))
	}

	assert.Equal(t, len(Suggest("tag", many, nil, 0)), DefaultSuggestionLimit)
	assert.Equal(t, len(Suggest("tag", many, nil, 3)), 3)
}

func TestSuggest_Deterministic(t *testing.T) {
	first := Suggest("e", sampleTags, nil, 10)
	for i := 0; i < 5; i++ {
		assert.DeepEqual(t, Suggest("e", sampleTags, nil, 10), first)
	}
}

func TestSuggest_AppendingNonMatchingNeverIncreases(t *testing.T) {
	base := Suggest("we", sampleTags, nil, 0)
	worse := Suggest("wez", sampleTags, nil, 0)

	scores := map[string]int{}
	for _, s := range base {
		scores[s.Name] = s.Score
	}
	for _, s := range worse {
		assert.Assert(t, s.Score <= scores[s.Name], "%s went from %d to %d", s.Name, scores[s.Name], s.Score)
	}
}

func TestSuggest_HyphenatedTags(t *testing.T) {
	got := Names(Suggest("web-", sampleTags, nil, 10))

	assert.Assert(t, is.Contains(got, "web-framework"))
	assert.Assert(t, !CanCommit("web-", got))
}

func TestCanCommit(t *testing.T) {
	suggested := Names(Suggest("rust", sampleTags, nil, 10))

	assert.Assert(t, CanCommit("rust", suggested))
	assert.Assert(t, CanCommit("RUST", suggested))
	assert.Assert(t, !CanCommit("rus", suggested))
	assert.Assert(t, !CanCommit("", suggested))
	// present in storage but not in the current result set
	assert.Assert(t, !CanCommit("go", suggested))
}
