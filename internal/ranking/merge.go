package ranking

import (
	"sort"
	"strings"

	"github.com/nileplate/backend/internal/types"
)

// dedupKey identifies logically-the-same recipe across sources: name
// lower-cased and trimmed, cuisine type verbatim.
type dedupKey struct {
	name    string
	cuisine string
}

func keyFor(c types.RecipeCandidate) dedupKey {
	return dedupKey{
		name:    strings.ToLower(strings.TrimSpace(c.Name)),
		cuisine: c.CuisineType,
	}
}

// Merge combines stored and generated candidates into one ranked sequence.
//
// Stored candidates are walked first, then generated ones; the first
// occurrence of a dedup key wins, so a stored recipe shadows a generated
// duplicate even when the duplicate would score higher. Generated candidates
// carry the flat GeneratedBonus on top of their overlap score. The result is
// ordered by score descending, then popularity descending, and is returned in
// full; truncating to a top-N is the caller's concern.
func Merge(stored, generated []types.RecipeCandidate, requested []string) []types.RecipeCandidate {
	seen := make(map[dedupKey]bool, len(stored)+len(generated))
	out := make([]types.RecipeCandidate, 0, len(stored)+len(generated))

	for _, c := range stored {
		k := keyFor(c)
		if seen[k] {
			continue
		}
		seen[k] = true
		c.Score = float64(Score(c.Ingredients, requested))
		out = append(out, c)
	}

	for _, c := range generated {
		k := keyFor(c)
		if seen[k] {
			continue
		}
		seen[k] = true
		c.Score = float64(Score(c.Ingredients, requested)) + GeneratedBonus
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].PopularityScore > out[j].PopularityScore
	})

	return out
}
