package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/nileplate/backend/internal/cache"
	"github.com/nileplate/backend/internal/models"
	"github.com/nileplate/backend/internal/provider"
	"github.com/nileplate/backend/internal/ranking"
	"github.com/nileplate/backend/internal/types"
)

// UpstreamBudget bounds how many provider calls may be made per window.
// The Redis fixed-window limiter satisfies this.
type UpstreamBudget interface {
	IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error)
}

const budgetKey = "provider"

// SuggestionService turns an ingredient list into generated recipe
// candidates: bounded in-memory cache, single-flight per fingerprint, one
// provider call with timeout and retry behind it, deterministic fallback
// when the upstream cannot serve.
type SuggestionService struct {
	generator provider.TextGenerator
	cache     *cache.SuggestionCache
	budget    UpstreamBudget
	logger    *zap.Logger
	flight    singleflight.Group
}

// NewSuggestionService creates a SuggestionService. budget may be nil, which
// disables the upstream call budget.
func NewSuggestionService(generator provider.TextGenerator, c *cache.SuggestionCache, budget UpstreamBudget, logger *zap.Logger) *SuggestionService {
	if c == nil {
		c = cache.NewSuggestionCache(cache.DefaultCapacity)
	}
	return &SuggestionService{
		generator: generator,
		cache:     c,
		budget:    budget,
		logger:    logger,
	}
}

// Suggest returns generated candidates for the given ingredients and
// preferences. Concurrent calls with the same fingerprint share one upstream
// request. Upstream failure, a malformed response and an exhausted budget
// all degrade to the fallback set; none of them surface as an error.
func (s *SuggestionService) Suggest(ctx context.Context, ingredients []string, cuisine string, dietary []string, difficulty int) ([]types.RecipeCandidate, error) {
	ingredients = ranking.NormalizeIngredients(ingredients)
	if len(ingredients) == 0 {
		return nil, nil
	}
	if dietary == nil {
		dietary = []string{}
	}

	key := cache.Fingerprint(ingredients, cuisine, dietary)
	if hit, ok := s.cache.Get(key); ok {
		return hit, nil
	}

	v, err, _ := s.flight.Do(key, func() (interface{}, error) {
		if hit, ok := s.cache.Get(key); ok {
			return hit, nil
		}

		if !s.allowUpstream(ctx) {
			s.logger.Warn("provider budget exhausted, serving fallback suggestions")
			return fallbackSuggestions(ingredients, cuisine), nil
		}

		prompt := buildRecipePrompt(ingredients, cuisine, dietary, difficulty)
		text, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			s.logger.Warn("recipe generation failed, serving fallback suggestions",
				zap.String("provider", s.generator.Name()), zap.Error(err))
			return fallbackSuggestions(ingredients, cuisine), nil
		}

		suggestions := s.parseSuggestions(text)
		if len(suggestions) == 0 {
			s.logger.Warn("no usable recipes in provider response, serving fallback suggestions",
				zap.String("provider", s.generator.Name()))
			return fallbackSuggestions(ingredients, cuisine), nil
		}

		s.cache.Put(key, suggestions)
		return suggestions, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]types.RecipeCandidate), nil
}

// Substitutions asks the provider for replacements for one ingredient and
// falls back to a small hardcoded table when it cannot answer.
func (s *SuggestionService) Substitutions(ctx context.Context, ingredient, cuisine string) ([]string, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return nil, errors.New("ingredient is required")
	}
	if cuisine == "" {
		cuisine = "global"
	}

	if !s.allowUpstream(ctx) {
		s.logger.Warn("provider budget exhausted, serving fallback substitutions")
		return fallbackSubstitutions(ingredient), nil
	}

	text, err := s.generator.Generate(ctx, buildSubstitutionPrompt(ingredient, cuisine))
	if err != nil {
		s.logger.Warn("substitution generation failed, serving fallback substitutions",
			zap.String("ingredient", ingredient), zap.Error(err))
		return fallbackSubstitutions(ingredient), nil
	}

	var out struct {
		Substitutions []string `json:"substitutions"`
	}
	if err := json.Unmarshal([]byte(extractJSON(text)), &out); err != nil {
		s.logger.Warn("substitution response was not valid JSON, serving fallback substitutions",
			zap.String("ingredient", ingredient), zap.Error(err))
		return fallbackSubstitutions(ingredient), nil
	}
	return out.Substitutions, nil
}

func (s *SuggestionService) allowUpstream(ctx context.Context) bool {
	if s.budget == nil {
		return true
	}
	allowed, _, _, err := s.budget.IsAllowed(ctx, budgetKey)
	if err != nil {
		// Budget check failures never block generation.
		s.logger.Warn("provider budget check failed", zap.Error(err))
		return true
	}
	return allowed
}

var complexityGuide = map[int]string{
	1: "very simple with minimal cooking steps",
	2: "simple with basic cooking techniques",
	3: "moderate complexity with standard techniques",
	4: "advanced with multiple techniques",
	5: "expert level with complex techniques",
}

const sudaneseContext = `
Focus on authentic Sudanese cuisine with traditional ingredients and cooking methods.
Include cultural context and traditional serving suggestions. Consider ingredients
like sorghum, fava beans, peanuts, sesame, tamarind, and traditional spices like
cardamom, cinnamon, and coriander. Mention traditional accompaniments.
`

func buildRecipePrompt(ingredients []string, cuisine string, dietary []string, difficulty int) string {
	dietaryText := ""
	if len(dietary) > 0 {
		dietaryText = fmt.Sprintf(" The recipes must be %s.", strings.Join(dietary, ", "))
	}

	complexity, ok := complexityGuide[difficulty]
	if !ok {
		complexity = "moderate complexity"
	}

	culturalContext := ""
	switch {
	case cuisine == "sudanese":
		culturalContext = sudaneseContext
	case cuisine != "any":
		culturalContext = fmt.Sprintf("Focus on authentic %s cuisine with traditional flavors and techniques.", cuisine)
	}

	return fmt.Sprintf(`You are an expert chef specializing in creating recipes from available ingredients.

INGREDIENTS AVAILABLE: %s

REQUIREMENTS:
- Create 3 unique, practical recipes using primarily these ingredients
- Recipes should be %s
- %s cuisine preference%s
- Include cooking time and serving size
- Provide clear, step-by-step instructions

%s

RESPONSE FORMAT (JSON only):
{
  "recipes": [
    {
      "name": "Recipe Name",
      "ingredients": ["ingredient1", "ingredient2", ...],
      "instructions": "Step-by-step cooking instructions",
      "cuisine_type": %q,
      "difficulty": %d,
      "cook_time_minutes": 30,
      "servings": 4,
      "dietary_tags": ["tag1", "tag2"],
      "tips": "Optional cooking tips or cultural notes"
    }
  ]
}

Important: Respond with valid JSON only. No additional text or formatting.`,
		strings.Join(ingredients, ", "), complexity, title(cuisine), dietaryText, culturalContext, cuisine, difficulty)
}

func buildSubstitutionPrompt(ingredient, cuisine string) string {
	return fmt.Sprintf(`Suggest 3-5 common substitutions for %q in %s cooking.

Consider:
- Similar flavor profile
- Similar cooking properties
- Common availability
- Cultural appropriateness for %s cuisine

Respond with JSON only:
{"substitutions": ["substitute1", "substitute2", ...]}`, ingredient, cuisine, cuisine)
}

// generatedRecipe is the wire shape the prompt asks for. Numeric fields use
// flexInt because models send ints, floats and numeric strings
// interchangeably.
type generatedRecipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	CuisineType  string   `json:"cuisine_type"`
	Difficulty   flexInt  `json:"difficulty"`
	CookTime     flexInt  `json:"cook_time_minutes"`
	Servings     flexInt  `json:"servings"`
	DietaryTags  []string `json:"dietary_tags"`
}

// parseSuggestions extracts the JSON envelope from the raw completion and
// converts each entry, skipping ones missing name, ingredients or
// instructions. Returns nil when nothing survives.
func (s *SuggestionService) parseSuggestions(text string) []types.RecipeCandidate {
	raw := extractJSON(text)
	if raw == "" {
		return nil
	}

	var envelope struct {
		Recipes []json.RawMessage `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		s.logger.Warn("provider response envelope was not valid JSON", zap.Error(err))
		return nil
	}

	var out []types.RecipeCandidate
	for _, entry := range envelope.Recipes {
		var rec generatedRecipe
		if err := json.Unmarshal(entry, &rec); err != nil {
			s.logger.Warn("skipping malformed generated recipe", zap.Error(err))
			continue
		}

		name := strings.TrimSpace(rec.Name)
		instructions := strings.TrimSpace(rec.Instructions)
		ingredients := ranking.NormalizeIngredients(rec.Ingredients)
		if name == "" || instructions == "" || len(ingredients) == 0 {
			s.logger.Warn("skipping incomplete generated recipe", zap.String("name", name))
			continue
		}

		cuisine := rec.CuisineType
		if cuisine == "" {
			cuisine = "global"
		}
		difficulty := rec.Difficulty.or(3)
		if difficulty < 1 {
			difficulty = 1
		} else if difficulty > 5 {
			difficulty = 5
		}
		cookTime := rec.CookTime.or(30)
		if cookTime < 5 {
			cookTime = 5
		}
		servings := rec.Servings.or(4)
		if servings < 1 {
			servings = 1
		}
		tags := rec.DietaryTags
		if tags == nil {
			tags = []string{}
		}

		out = append(out, types.RecipeCandidate{
			Name:            name,
			Ingredients:     ingredients,
			Instructions:    instructions,
			CuisineType:     cuisine,
			DifficultyLevel: difficulty,
			CookTimeMinutes: cookTime,
			ServingSize:     servings,
			DietaryTags:     tags,
			Source:          models.SourceGenerated,
		})
	}
	return out
}

// extractJSON returns the outermost {...} block, tolerating prose or
// markdown fences around the JSON the prompt asked for.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}

// flexInt accepts a JSON number or a numeric string.
type flexInt struct {
	value int
	set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		if string(data) == "null" {
			return errors.New("null numeric value")
		}
		f.value = int(num)
		f.set = true
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return fmt.Errorf("invalid numeric value %q", str)
		}
		f.value = n
		f.set = true
		return nil
	}

	return fmt.Errorf("invalid numeric value %s", string(data))
}

func (f flexInt) or(def int) int {
	if !f.set {
		return def
	}
	return f.value
}

// title upper-cases the first letter of each word.
func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
