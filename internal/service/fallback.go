package service

import (
	"fmt"
	"strings"

	"github.com/nileplate/backend/internal/models"
	"github.com/nileplate/backend/internal/types"
)

// Ingredient groups the fallback templates match against. The catalog seed
// keeps these same names so requests phrased from it always find a template.
var (
	stirFryProteins   = []string{"chicken", "beef", "lamb", "fish"}
	stirFryVegetables = []string{"onions", "tomatoes", "carrots", "potatoes"}
	curryVegetables   = []string{"tomatoes", "onions", "carrots", "potatoes", "spinach", "mushrooms"}
	stewPulses        = []string{"beans", "lentils", "fava beans"}
)

var commonSubstitutions = map[string][]string{
	"chicken": {"turkey", "tofu", "tempeh", "mushrooms"},
	"beef":    {"lamb", "pork", "lentils", "mushrooms"},
	"butter":  {"oil", "margarine", "coconut oil", "ghee"},
	"milk":    {"coconut milk", "almond milk", "soy milk", "water"},
	"eggs":    {"flax eggs", "chia eggs", "applesauce", "banana"},
	"flour":   {"rice flour", "almond flour", "coconut flour", "oat flour"},
}

// fallbackSuggestions builds up to two deterministic recipes from whatever
// requested ingredients match the template groups. Ingredients must already
// be normalized.
func fallbackSuggestions(ingredients []string, cuisine string) []types.RecipeCandidate {
	var out []types.RecipeCandidate

	proteins := intersectOrdered(ingredients, stirFryProteins)
	vegetables := intersectOrdered(ingredients, stirFryVegetables)
	if len(proteins) > 0 && len(vegetables) > 0 {
		protein := proteins[0]
		ings := make([]string, 0, len(proteins)+len(vegetables)+3)
		ings = append(ings, proteins...)
		ings = append(ings, vegetables...)
		ings = append(ings, "oil", "salt", "pepper")
		out = append(out, types.RecipeCandidate{
			Name:        title(protein) + " and Vegetable Stir-fry",
			Ingredients: ings,
			Instructions: fmt.Sprintf("1. Cut %s and vegetables into bite-sized pieces. "+
				"2. Heat oil in a large pan. 3. Cook %s until browned. "+
				"4. Add vegetables and stir-fry until tender. 5. Season with salt and pepper. "+
				"6. Serve hot.", protein, protein),
			CuisineType:     "global",
			DifficultyLevel: 2,
			CookTimeMinutes: 25,
			ServingSize:     4,
			DietaryTags:     []string{"quick", "one-pan"},
			Source:          models.SourceFallback,
		})
	}

	if veg := intersectOrdered(ingredients, curryVegetables); len(veg) >= 2 {
		curryCuisine := "global"
		if cuisine == "sudanese" || cuisine == "indian" {
			curryCuisine = cuisine
		}
		ings := make([]string, 0, len(veg)+4)
		ings = append(ings, veg...)
		ings = append(ings, "oil", "cumin", "turmeric", "salt")
		out = append(out, types.RecipeCandidate{
			Name:        "Mixed Vegetable Curry",
			Ingredients: ings,
			Instructions: "1. Heat oil in a pot. 2. Add cumin and let it splutter. " +
				"3. Add chopped vegetables. 4. Add turmeric and salt. " +
				"5. Cover and cook until vegetables are tender. 6. Serve with rice or bread.",
			CuisineType:     curryCuisine,
			DifficultyLevel: 2,
			CookTimeMinutes: 30,
			ServingSize:     4,
			DietaryTags:     []string{"vegetarian", "vegan"},
			Source:          models.SourceFallback,
		})
	}

	if cuisine == "sudanese" && len(intersectOrdered(ingredients, stewPulses)) > 0 {
		out = append(out, types.RecipeCandidate{
			Name:        "Simple Sudanese Bean Stew",
			Ingredients: []string{"beans", "onions", "tomatoes", "oil", "cumin", "salt"},
			Instructions: "1. Soak beans overnight if dried. 2. Cook beans until tender. " +
				"3. In another pot, fry onions in oil. 4. Add tomatoes and cook until soft. " +
				"5. Add cooked beans, cumin, and salt. 6. Simmer for 15 minutes. 7. Serve with bread.",
			CuisineType:     "sudanese",
			DifficultyLevel: 2,
			CookTimeMinutes: 45,
			ServingSize:     6,
			DietaryTags:     []string{"vegetarian", "high-protein", "traditional"},
			Source:          models.SourceFallback,
		})
	}

	if len(out) > 2 {
		out = out[:2]
	}
	return out
}

func fallbackSubstitutions(ingredient string) []string {
	return commonSubstitutions[strings.ToLower(ingredient)]
}

// intersectOrdered keeps the elements of have that appear in want,
// preserving their order in have.
func intersectOrdered(have, want []string) []string {
	set := make(map[string]struct{}, len(want))
	for _, w := range want {
		set[w] = struct{}{}
	}
	var out []string
	for _, ing := range have {
		if _, ok := set[ing]; ok {
			out = append(out, ing)
		}
	}
	return out
}
