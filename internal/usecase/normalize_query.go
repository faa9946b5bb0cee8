package usecase

import (
	"strings"
	"unicode/utf8"
)

// minTokenLength is the exclusive lower bound for search tokens.
// Words of 3 characters or fewer are stopword noise for the
// websearch-syntax query.
const minTokenLength = 3

// NormalizeQuery derives a websearch-syntax query from a raw question:
// split on whitespace, drop short tokens, join survivors with an
// OR separator. Returns "" when nothing survives, meaning the
// question carried no useful search terms. Never fails.
func NormalizeQuery(message string) string {
	var kept []string
	for _, token := range strings.Fields(message) {
		if utf8.RuneCountInString(token) > minTokenLength {
			kept = append(kept, token)
		}
	}
	return strings.Join(kept, " | ")
}
