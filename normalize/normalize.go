package normalize

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes precomposed characters (NFD), removes the combining
// accent marks, and recomposes the remainder. "Chosŏn" and its decomposed
// spelling both come out as "Choson"; Hangul and CJK letters carry no
// combining marks and pass through unchanged.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips accents and folds case. The accent strip runs first so the
// stemmer later sees canonical base letters.
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Stem reduces a single token to its canonical root form, so morphological
// variants ("databases"/"database", "computation"/"computer"/"computing")
// share a stem. The stemmer runs until the token stops changing: a single
// pass is not a fixed point ("databases" stems to "databas", which stems
// again to "databa"), and already-normalized text must re-normalize to
// itself. Tokens the stemmer cannot handle are returned unchanged.
func Stem(token string) string {
	for {
		stemmed, err := snowball.Stem(token, "english", true)
		if err != nil || stemmed == "" || stemmed == token {
			return token
		}
		token = stemmed
	}
}

// Normalize applies the full pipeline: Unicode decomposition, accent
// stripping, case folding, whitespace collapsing, then per-token stemming.
// The order is load-bearing. It is pure, total and idempotent, and is the
// single normalization used for both record index text and query terms, so
// matching stays symmetric.
func Normalize(s string) string {
	tokens := strings.Fields(Fold(s))
	for i, tok := range tokens {
		tokens[i] = Stem(tok)
	}
	return strings.Join(tokens, " ")
}

// Tokens returns the normalized, stemmed tokens of s.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}
