package complete

import (
	"strings"
	"unicode"
)

// TagContext is the in-progress '#tag' span around the cursor. Offsets are
// rune indexes into the input; Start points at the '#' and End is just past
// the tag, closing quote included.
type TagContext struct {
	Text  string
	Start int
	End   int
}

// FindTagContext returns the tag span under cursor. The input is split the
// way the query language reads it: a tag starts a token, '#"..."' and
// '#'...'' spans are one tag even with spaces inside or no closing quote,
// and nothing inside a quoted phrase is a tag. The tag must carry text and
// the cursor must sit after its '#'.
func FindTagContext(text string, cursor int) (TagContext, bool) {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}

	n := len(runes)
	for i := 0; i < n && i < cursor; {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '#' && i+1 < n && isQuote(runes[i+1]):
			body, end := scanQuoted(runes, i+2, runes[i+1])
			if cursor <= end && strings.TrimSpace(body) != "" {
				return TagContext{Text: body, Start: i, End: end}, true
			}
			i = end

		case r == '#':
			end := scanWord(runes, i+1)
			if end > i+1 && cursor <= end {
				return TagContext{Text: string(runes[i+1 : end]), Start: i, End: end}, true
			}
			i = end

		case isQuote(r):
			_, i = scanQuoted(runes, i+1, r)

		default:
			i = scanWord(runes, i)
		}
	}
	return TagContext{}, false
}

// inQuotes reports whether cursor sits between the quotes of a quoted tag,
// or anywhere after the opening quote when it is unterminated.
func inQuotes(text string, tc TagContext, cursor int) bool {
	runes := []rune(text)
	if tc.End > len(runes) || tc.End-tc.Start < 2 || !isQuote(runes[tc.Start+1]) {
		return false
	}
	closed := tc.End-tc.Start >= 3 && runes[tc.End-1] == runes[tc.Start+1]
	return !closed || cursor < tc.End
}

func scanWord(runes []rune, from int) int {
	i := from
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

// scanQuoted returns the body after an opening quote and the index just past
// the closing one, or the end of input when there is none.
func scanQuoted(runes []rune, from int, q rune) (string, int) {
	for i := from; i < len(runes); i++ {
		if runes[i] == q {
			return string(runes[from:i]), i + 1
		}
	}
	return string(runes[from:]), len(runes)
}

func isQuote(r rune) bool {
	return r == '"' || r == '\''
}

// replaceSpan swaps runes [start,end) of text for repl.
func replaceSpan(text string, start, end int, repl string) string {
	runes := []rune(text)
	return string(runes[:start]) + repl + string(runes[end:])
}
