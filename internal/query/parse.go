package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenTerm tokenKind = iota
	tokenPhrase
	tokenTag
	tokenAnd
)

// token is a lexical unit with its byte span in the raw input.
type token struct {
	kind  tokenKind
	text  string
	start int
	end   int
}

// Parse turns a raw search string into a Query. It never fails: unterminated
// quotes run to the end of the input and a lone '#' is dropped.
func Parse(raw string) Query {
	var q Query
	var chains [][]Term
	joinNext := false

	for _, tok := range tokenize(raw) {
		switch tok.kind {
		case tokenTag:
			q = q.WithTags(tok.text)
		case tokenAnd:
			// a leading AND has nothing to join
			if len(chains) > 0 {
				joinNext = true
			}
		case tokenTerm, tokenPhrase:
			term := Term{Text: tok.text, Exact: tok.kind == tokenPhrase}
			if joinNext {
				last := len(chains) - 1
				chains[last] = append(chains[last], term)
			} else {
				chains = append(chains, []Term{term})
			}
			joinNext = false
		}
	}

	q.TermGroups = groupChains(chains)
	return q
}

// StripTags removes every '#...' token from raw and returns the remaining
// free text with whitespace collapsed.
func StripTags(raw string) string {
	var parts []string
	for _, tok := range tokenize(raw) {
		if tok.kind == tokenTag {
			continue
		}
		parts = append(parts, raw[tok.start:tok.end])
	}
	return strings.Join(parts, " ")
}

// groupChains folds AND-chains into term groups. Consecutive single terms
// share one OR group; chains of two or more become AND groups.
func groupChains(chains [][]Term) []TermGroup {
	var groups []TermGroup
	for _, chain := range chains {
		if len(chain) > 1 {
			groups = append(groups, TermGroup{Op: And, Terms: chain})
			continue
		}
		last := len(groups) - 1
		if last >= 0 && groups[last].Op == Or {
			groups[last].Terms = append(groups[last].Terms, chain[0])
			continue
		}
		groups = append(groups, TermGroup{Op: Or, Terms: []Term{chain[0]}})
	}
	return groups
}

func tokenize(raw string) []token {
	var tokens []token
	n := len(raw)
	i := 0

	for i < n {
		c := raw[i]
		if r, size := utf8.DecodeRuneInString(raw[i:]); unicode.IsSpace(r) {
			i += size
			continue
		}
		start := i

		switch {
		case c == '#' && i+1 < n && isQuote(raw[i+1]):
			body, end := scanQuoted(raw, i+2, raw[i+1])
			if NormalizeTag(body) != "" {
				tokens = append(tokens, token{kind: tokenTag, text: body, start: start, end: end})
			}
			i = end

		case c == '#':
			end := scanWord(raw, i+1)
			if end > i+1 {
				tokens = append(tokens, token{kind: tokenTag, text: raw[i+1 : end], start: start, end: end})
			}
			i = end

		case isQuote(c):
			body, end := scanQuoted(raw, i+1, c)
			if text := strings.TrimSpace(body); text != "" {
				tokens = append(tokens, token{kind: tokenPhrase, text: text, start: start, end: end})
			}
			i = end

		default:
			end := scanWord(raw, i)
			word := raw[i:end]
			kind := tokenTerm
			if strings.EqualFold(word, "and") {
				kind = tokenAnd
			}
			tokens = append(tokens, token{kind: kind, text: word, start: start, end: end})
			i = end
		}
	}

	return tokens
}

// scanWord returns the end of the non-space run starting at from.
func scanWord(raw string, from int) int {
	for i, r := range raw[from:] {
		if unicode.IsSpace(r) {
			return from + i
		}
	}
	return len(raw)
}

// scanQuoted returns the quoted body starting at from and the index just past
// the closing quote, or the end of input when the quote is unterminated.
func scanQuoted(raw string, from int, q byte) (string, int) {
	if from > len(raw) {
		return "", len(raw)
	}
	idx := strings.IndexByte(raw[from:], q)
	if idx < 0 {
		return raw[from:], len(raw)
	}
	return raw[from : from+idx], from + idx + 1
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}
