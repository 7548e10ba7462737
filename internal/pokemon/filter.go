package pokemon

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Filter keeps the summaries whose name contains q, ignoring case, in their
// original order. An empty q returns s unchanged.
func Filter(s []Summary, q string) []Summary {
	if q == "" {
		return s
	}
	needle := strings.ToLower(q)
	out := make([]Summary, 0, len(s))
	for _, p := range s {
		if matchesName(p, needle) {
			out = append(out, p)
		}
	}
	return out
}

func matchesName(p Summary, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQuery)
}

// maxSuggestDistance caps how far a suggestion may be from the query.
const maxSuggestDistance = 3

// Suggest returns the name closest to q by edit distance, for a filter that
// matched nothing. Ties keep the earlier entry.
func Suggest(s []Summary, q string) (string, bool) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return "", false
	}
	query := []rune(q)
	limit := min(maxSuggestDistance, max(1, len(query)/2))
	best, bestDist := "", limit+1
	for _, p := range s {
		name := []rune(strings.ToLower(p.Name))
		if len(name) > len(query) {
			// compare against the prefix so short queries can still match long names
			name = name[:len(query)]
		}
		d := levenshtein.ComputeDistance(q, string(name))
		if d < bestDist {
			best, bestDist = p.Name, d
		}
	}
	if best == "" || bestDist == 0 {
		return "", false
	}
	return best, true
}
