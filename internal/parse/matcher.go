package parse

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/annekroon/respond-media/internal/model"
)

// FuzzyThreshold is the minimum similarity ratio for a fuzzy label match
const FuzzyThreshold = 0.7

// MatchTaxonomy maps parsed records onto the fixed ordered taxonomy. The
// result always has exactly one slot per taxonomy position; slots with no
// matching record hold an empty CategoryRecord, never nil. Matching is
// exact on normalized labels first, then fuzzy by similarity ratio, with
// ties broken by first-encountered parsed order. Records labeled with the
// failure sentinel are excluded entirely.
func MatchTaxonomy(tax model.Taxonomy, records []model.CategoryRecord) model.AnnotationResult {
	result := make(model.AnnotationResult, len(tax))

	type candidate struct {
		norm string
		rec  model.CategoryRecord
	}
	var candidates []candidate
	for _, r := range records {
		norm := NormalizeLabel(r.Label)
		if norm == "" || norm == strings.ToLower(model.SentinelLabel) {
			continue
		}
		candidates = append(candidates, candidate{norm: norm, rec: r})
	}

	for i, cat := range tax {
		want := NormalizeLabel(cat.Name)

		matched := false
		for _, c := range candidates {
			if c.norm == want {
				result[i] = c.rec
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		best := -1
		bestScore := 0.0
		for j, c := range candidates {
			score := similarity(want, c.norm)
			if score >= FuzzyThreshold && score > bestScore {
				bestScore = score
				best = j
			}
		}
		if best >= 0 {
			result[i] = candidates[best].rec
		}
	}

	return result
}

// NormalizeLabel strips markdown emphasis markers, trims, and lowercases
func NormalizeLabel(s string) string {
	s = strings.NewReplacer("*", "", "_", "", "`", "").Replace(s)
	return strings.ToLower(strings.TrimSpace(s))
}

// similarity is 1 - editDistance/maxLen, in [0,1]
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}
