package query

import (
	"testing"

	"gotest.tools/v3/assert"
)

func terms(texts ...string) []Term {
	out := make([]Term, len(texts))
	for i, t := range texts {
		out[i] = Term{Text: t}
	}
	return out
}

func TestParse_EmptyMatchesEverything(t *testing.T) {
	for _, raw := range []string{"", "   ", "#", " # ", "AND", "and and"} {
		q := Parse(raw)
		assert.Assert(t, q.IsEmpty(), "raw %q gave %+v", raw, q)
	}
}

func TestParse_DefaultOr(t *testing.T) {
	q := Parse("rust programming")

	assert.Equal(t, len(q.TagFilters), 0)
	assert.DeepEqual(t, q.TermGroups, []TermGroup{{Op: Or, Terms: terms("rust", "programming")}})
}

func TestParse_AndKeyword(t *testing.T) {
	for _, raw := range []string{"rust AND programming", "rust and programming", "rust And programming"} {
		q := Parse(raw)
		assert.DeepEqual(t, q.TermGroups, []TermGroup{{Op: And, Terms: terms("rust", "programming")}})
	}
}

func TestParse_TagsAndTerms(t *testing.T) {
	q := Parse("#rust #axum web development")

	assert.DeepEqual(t, q.TagFilters, []string{"rust", "axum"})
	assert.DeepEqual(t, q.TermGroups, []TermGroup{{Op: Or, Terms: terms("web", "development")}})
}

func TestParse_SpacedTagsAndExactPhrase(t *testing.T) {
	q := Parse(`#"web dev" #react "best practices" AND performance`)

	assert.DeepEqual(t, q.TagFilters, []string{"web dev", "react"})
	assert.DeepEqual(t, q.TermGroups, []TermGroup{{
		Op: And,
		Terms: []Term{
			{Text: "best practices", Exact: true},
			{Text: "performance"},
		},
	}})
}

func TestParse_SingleQuotes(t *testing.T) {
	q := Parse(`#'Machine Learning' 'deep nets'`)

	assert.DeepEqual(t, q.TagFilters, []string{"machine learning"})
	assert.DeepEqual(t, q.TermGroups, []TermGroup{{Op: Or, Terms: []Term{{Text: "deep nets", Exact: true}}}})
}

func TestParse_MixedGroups(t *testing.T) {
	q := Parse("go rust AND wasm zig")

	assert.DeepEqual(t, q.TermGroups, []TermGroup{
		{Op: Or, Terms: terms("go")},
		{Op: And, Terms: terms("rust", "wasm")},
		{Op: Or, Terms: terms("zig")},
	})
}

func TestParse_AndChain(t *testing.T) {
	q := Parse("a and b AND c")

	assert.DeepEqual(t, q.TermGroups, []TermGroup{{Op: And, Terms: terms("a", "b", "c")}})
}

func TestParse_DanglingAndIgnored(t *testing.T) {
	assert.DeepEqual(t, Parse("AND rust").TermGroups, []TermGroup{{Op: Or, Terms: terms("rust")}})
	assert.DeepEqual(t, Parse("rust AND").TermGroups, []TermGroup{{Op: Or, Terms: terms("rust")}})
}

func TestParse_TagBetweenAndTerms(t *testing.T) {
	q := Parse("rust AND #web axum")

	assert.DeepEqual(t, q.TagFilters, []string{"web"})
	assert.DeepEqual(t, q.TermGroups, []TermGroup{{Op: And, Terms: terms("rust", "axum")}})
}

func TestParse_UnterminatedQuote(t *testing.T) {
	q := Parse(`intro "best practices for go`)
	assert.DeepEqual(t, q.TermGroups, []TermGroup{{
		Op:    Or,
		Terms: []Term{{Text: "intro"}, {Text: "best practices for go", Exact: true}},
	}})

	q = Parse(`#"web dev`)
	assert.DeepEqual(t, q.TagFilters, []string{"web dev"})
	assert.Equal(t, len(q.TermGroups), 0)
}

func TestParse_TagNormalization(t *testing.T) {
	q := Parse(`#Rust #RUST #"  Web   Dev " #""`)

	assert.DeepEqual(t, q.TagFilters, []string{"rust", "web dev"})
}

func TestParse_LoneHashIgnored(t *testing.T) {
	q := Parse("rust # web")

	assert.Equal(t, len(q.TagFilters), 0)
	assert.DeepEqual(t, q.TermGroups, []TermGroup{{Op: Or, Terms: terms("rust", "web")}})
}

func TestParse_CollapsesWhitespace(t *testing.T) {
	q := Parse("  rust \t  programming  ")

	assert.DeepEqual(t, q.TermGroups, []TermGroup{{Op: Or, Terms: terms("rust", "programming")}})
}

func TestParse_HashInsideWordIsTerm(t *testing.T) {
	q := Parse("c# f#")

	assert.Equal(t, len(q.TagFilters), 0)
	assert.DeepEqual(t, q.TermGroups, []TermGroup{{Op: Or, Terms: terms("c#", "f#")}})
}

func TestQuery_StringRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"rust programming",
		"rust and programming",
		"#rust #axum web development",
		`#"web dev" #react "best practices" AND performance`,
		`go rust AND wasm zig 'say "hi"'`,
		`#'say "hi"' x`,
	}
	for _, raw := range inputs {
		q := Parse(raw)
		again := Parse(q.String())
		assert.DeepEqual(t, again, q)
		assert.Equal(t, again.String(), q.String())
	}
}

func TestQuery_StringCanonical(t *testing.T) {
	q := Parse(`  #Web   rust and   programming "a b"`)

	assert.Equal(t, q.String(), `#web rust AND programming "a b"`)
}

func TestQuery_WithTags(t *testing.T) {
	base := Parse("#rust web")
	q := base.WithTags("Axum", "rust", " ", "web  dev")

	assert.DeepEqual(t, q.TagFilters, []string{"rust", "axum", "web dev"})
	assert.DeepEqual(t, base.TagFilters, []string{"rust"})
	assert.Assert(t, q.HasTag("AXUM"))
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"#rust", ""},
		{"rust #web programming", "rust programming"},
		{`#"web dev" "best practices" AND perf #we`, `"best practices" AND perf`},
		{"hello #", "hello"},
		{"c# is fine", "c# is fine"},
		{`find #"unterminated tag here`, "find"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, StripTags(tt.raw), tt.want)
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, NormalizeTag("  Web\tDev  "), "web dev")
	assert.Equal(t, NormalizeTag("   "), "")
	assert.Equal(t, NormalizeTag("go"), "go")
}

func TestParse_UnicodeWhitespaceSeparates(t *testing.T) {
	q := Parse("#0\v'\" go rust")

	assert.DeepEqual(t, q.TagFilters, []string{"0"})
	assert.DeepEqual(t, q.TermGroups, []TermGroup{
		{Op: Or, Terms: []Term{{Text: `"`, Exact: true}, {Text: "go"}, {Text: "rust"}}},
	})
}

func TestFormatTag(t *testing.T) {
	assert.Equal(t, FormatTag("rust"), "#rust")
	assert.Equal(t, FormatTag("web dev"), `#"web dev"`)
	assert.Equal(t, FormatTag("a b"), "#\"a b\"")
	assert.Equal(t, FormatTag(`say "hi"`), `#'say "hi"'`)
	assert.Equal(t, FormatTag("'quoted"), `#"'quoted"`)
}

func TestQuery_StringBothQuotesStaysOneTag(t *testing.T) {
	q := Query{}.WithTags(`it's "x" y`)

	again := Parse(q.String())
	assert.DeepEqual(t, again.TagFilters, []string{`it's 'x' y`})
	assert.Equal(t, len(again.TermGroups), 0)
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"rust and programming",
		`#"web dev" #react "best practices" AND performance`,
		`#'say "hi"' x`,
		"#0\v'\"",
		"# # x \"unterminated",
		"c# AND AND #Ünïcode tag",
		"\xff#\xfe 'a",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		q := Parse(raw)
		_ = StripTags(raw)

		again := Parse(q.String())
		assert.DeepEqual(t, again.TagFilters, q.TagFilters)
		assert.DeepEqual(t, again, q)
	})
}
