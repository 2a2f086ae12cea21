package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance caps how far a code may be from the term before the
// suggestion is considered noise.
const maxSuggestDistance = 3

// Suggest returns the catalog code closest to term by edit distance, for a
// "did you mean" hint when a search produced no matches. Returns "" when the
// term is empty or nothing is close enough.
func Suggest(items []Item, term string) string {
	term = strings.ToUpper(strings.TrimSpace(term))
	if term == "" {
		return ""
	}
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, it := range items {
		d := levenshtein.ComputeDistance(term, strings.ToUpper(it.Code))
		if d < bestDist {
			best = it.Code
			bestDist = d
		}
	}
	return best
}
