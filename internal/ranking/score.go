package ranking

import "strings"

// GeneratedBonus is the flat score boost applied to generated suggestions so
// novel recipes surface above stored ties.
const GeneratedBonus = 1.5

// NormalizeIngredient trims surrounding whitespace and lower-cases an
// ingredient name so comparisons ignore formatting differences.
func NormalizeIngredient(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeIngredients normalizes every entry and drops the ones that are
// empty after trimming. Order of the survivors is preserved.
func NormalizeIngredients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := NormalizeIngredient(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Score counts the case-insensitive set overlap between a recipe's
// ingredients and the requested ingredients. Duplicates on either side count
// once; empty inputs score 0.
func Score(recipeIngredients, requestedIngredients []string) int {
	if len(recipeIngredients) == 0 || len(requestedIngredients) == 0 {
		return 0
	}

	requested := make(map[string]bool, len(requestedIngredients))
	for _, ing := range requestedIngredients {
		if n := NormalizeIngredient(ing); n != "" {
			requested[n] = true
		}
	}

	matched := make(map[string]bool, len(recipeIngredients))
	for _, ing := range recipeIngredients {
		n := NormalizeIngredient(ing)
		if n != "" && requested[n] {
			matched[n] = true
		}
	}
	return len(matched)
}
