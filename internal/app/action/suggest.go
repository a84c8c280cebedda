package action

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestID returns the candidate closest to input within an edit budget
// that grows with the candidate's length, or "" when nothing is close.
func suggestID(input string, candidates []string) string {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return ""
	}
	best := ""
	bestDist := -1
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(in, c)
		if dist > levenshteinLimit(len(c)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best = c
			bestDist = dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
