package search

import (
	"strings"
	"unicode"

	"github.com/poiesic/libsearch/normalize"
)

// Query is a parsed free-text query: terms a matching record must contain,
// and negated terms it must not.
type Query struct {
	// Required terms, normalized, in query order, deduplicated.
	Required []string
	// Excluded terms, normalized.
	Excluded []string
}

// IsEmpty reports whether the query demands nothing. By policy an empty
// query produces zero results, never "match everything" — this also covers
// queries that negate without requiring anything.
func (q Query) IsEmpty() bool {
	return len(q.Required) == 0
}

// ParseQuery tokenizes a raw query string into required and excluded terms.
//
// Characters outside the permitted set (letters, digits, combining marks,
// apostrophe, and `-`) are replaced with spaces before tokenizing, so
// script-shaped input degrades to harmless literal words. This is a
// sanitization contract, not the storage layer's injection safety: matching
// only ever compares token content against index text.
//
// A `-` prefix marks a token as excluded; the prefix is stripped before
// normalization. Each surviving token passes through the same normalization
// pipeline as record index text.
func ParseQuery(raw string) Query {
	var q Query
	// Required and excluded terms deduplicate independently: "computer
	// -computer" keeps the exclusion, and exclusion wins at match time.
	seenRequired := make(map[string]bool)
	seenExcluded := make(map[string]bool)

	for _, token := range strings.Fields(sanitize(raw)) {
		negated := false
		if strings.HasPrefix(token, "-") {
			negated = true
			token = strings.TrimLeft(token, "-")
		}
		if !hasWordContent(token) {
			continue
		}

		term := normalize.Normalize(token)
		if term == "" {
			continue
		}

		if negated {
			if !seenExcluded[term] {
				seenExcluded[term] = true
				q.Excluded = append(q.Excluded, term)
			}
		} else if !seenRequired[term] {
			seenRequired[term] = true
			q.Required = append(q.Required, term)
		}
	}

	return q
}

// sanitize replaces every rune outside the permitted set with a space.
func sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// hasWordContent reports whether a token contains at least one letter or
// digit. Punctuation-only leftovers (a lone apostrophe, a bare hyphen) are
// dropped rather than searched.
func hasWordContent(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
