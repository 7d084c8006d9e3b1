package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nileplate/backend/config"
	"github.com/nileplate/backend/internal/cache"
	"github.com/nileplate/backend/internal/models"
	"github.com/nileplate/backend/internal/ranking"
	"github.com/nileplate/backend/internal/types"
)

// ErrEmptyIngredients rejects searches with no usable ingredient.
var ErrEmptyIngredients = errors.New("at least one ingredient is required")

// Popularity increments per interaction kind.
const (
	popularityView = 0.1
	popularityRate = 0.5
	popularityCook = 1.0
)

// SuggestionProvider is the slice of the suggestion service the search
// pipeline needs.
type SuggestionProvider interface {
	Suggest(ctx context.Context, ingredients []string, cuisine string, dietary []string, difficulty int) ([]types.RecipeCandidate, error)
}

// RecipeService runs the search pipeline and the stored-recipe surface:
// cached search, browse, single fetch, ratings and popularity.
type RecipeService struct {
	db          *gorm.DB
	redis       *redis.Client
	suggestions SuggestionProvider
	search      config.SearchConfig
	responseTTL time.Duration
	logger      *zap.Logger
}

// NewRecipeService creates a RecipeService. redisClient may be nil, which
// disables the response cache.
func NewRecipeService(db *gorm.DB, redisClient *redis.Client, suggestions SuggestionProvider, search config.SearchConfig, responseTTL time.Duration, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		db:          db,
		redis:       redisClient,
		suggestions: suggestions,
		search:      search,
		responseTTL: responseTTL,
		logger:      logger,
	}
}

// Search runs the full pipeline: normalize, response cache, stored
// candidates, generated candidates, merge and rank, truncate, log. A failing
// suggestion side degrades to stored results only; a failing search log
// never fails the request.
func (s *RecipeService) Search(ctx context.Context, userID *uuid.UUID, req types.SearchRequest) (*types.SearchResponse, error) {
	ingredients := ranking.NormalizeIngredients(req.Ingredients)
	if len(ingredients) == 0 {
		return nil, ErrEmptyIngredients
	}
	if max := s.search.MaxIngredients; max > 0 && len(ingredients) > max {
		ingredients = ingredients[:max]
	}

	cuisine := req.CuisinePreference
	if cuisine == "" {
		cuisine = "any"
	}
	dietary := req.DietaryRestrictions
	if dietary == nil {
		dietary = []string{}
	}
	difficulty := 3
	if req.Difficulty != nil {
		difficulty = *req.Difficulty
	}
	if difficulty < 1 {
		difficulty = 1
	} else if difficulty > 5 {
		difficulty = 5
	}
	maxCookTime := 60
	if req.MaxCookTime != nil {
		maxCookTime = *req.MaxCookTime
	}

	cacheKey := responseCacheKey(ingredients, cuisine, dietary, difficulty, maxCookTime)
	if resp, ok := s.cachedResponse(ctx, cacheKey); ok {
		return resp, nil
	}

	stored, err := s.findCandidates(ctx, ingredients, cuisine, maxCookTime, difficulty)
	if err != nil {
		return nil, fmt.Errorf("stored recipe lookup failed: %w", err)
	}

	generated, err := s.suggestions.Suggest(ctx, ingredients, cuisine, dietary, difficulty)
	if err != nil {
		s.logger.Warn("suggestion lookup failed, continuing with stored recipes only", zap.Error(err))
		generated = nil
	}

	combined := ranking.Merge(stored, generated, ingredients)
	total := len(combined)
	if max := s.search.MaxResults; max > 0 && len(combined) > max {
		combined = combined[:max]
	}
	if combined == nil {
		combined = []types.RecipeCandidate{}
	}

	s.logSearch(ctx, userID, ingredients, cuisine, total)

	resp := &types.SearchResponse{
		Recipes:    combined,
		TotalFound: total,
		SearchMeta: types.SearchMeta{
			IngredientsUsed:   ingredients,
			CuisinePreference: cuisine,
			Difficulty:        difficulty,
			Timestamp:         time.Now().UTC(),
		},
	}
	s.storeResponse(ctx, cacheKey, resp)
	return resp, nil
}

// findCandidates queries stored recipes matching any requested ingredient,
// filtered by cuisine, cook time and difficulty, ordered by popularity.
func (s *RecipeService) findCandidates(ctx context.Context, ingredients []string, cuisine string, maxCookTime, difficulty int) ([]types.RecipeCandidate, error) {
	ingredientCol := "LOWER(ingredients)"
	if s.db.Dialector.Name() == "postgres" {
		ingredientCol = "LOWER(ingredients::text)"
	}

	match := s.db.Where(ingredientCol+" LIKE ?", "%"+ingredients[0]+"%")
	for _, ing := range ingredients[1:] {
		match = match.Or(ingredientCol+" LIKE ?", "%"+ing+"%")
	}

	query := s.db.WithContext(ctx).Model(&models.Recipe{}).Where(match)
	if cuisine != "any" && cuisine != "" {
		query = query.Where("cuisine_type = ?", cuisine)
	}
	if maxCookTime > 0 {
		query = query.Where("cook_time_minutes <= ?", maxCookTime)
	}
	if difficulty > 0 {
		query = query.Where("difficulty_level = ?", difficulty)
	}

	limit := s.search.CandidateLimit
	if limit <= 0 {
		limit = 10
	}

	var rows []models.Recipe
	if err := query.Order("popularity_score DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]types.RecipeCandidate, 0, len(rows))
	for i := range rows {
		out = append(out, candidateFromRecipe(&rows[i]))
	}
	return out, nil
}

// GetRecipe fetches one stored recipe with its rating aggregate and counts
// the view toward popularity.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeCandidate, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}

	cand := candidateFromRecipe(&recipe)
	s.attachRatings(ctx, id, &cand)
	s.bumpPopularity(ctx, id, popularityView)
	return &cand, nil
}

// ListRecipes is the browse surface: optional free-text query (similarity
// ordered on postgres, LIKE elsewhere), cuisine and dietary filters.
func (s *RecipeService) ListRecipes(ctx context.Context, q, cuisine, dietary string, limit, offset int) ([]types.RecipeCandidate, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})
	postgres := s.db.Dialector.Name() == "postgres"

	ordered := false
	if q != "" {
		if postgres {
			vec := GenerateEmbedding(q)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
			ordered = true
		} else {
			like := "%" + strings.ToLower(q) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(ingredients) LIKE ?", like, like)
		}
	}
	if cuisine != "" {
		query = query.Where("cuisine_type = ?", cuisine)
	}
	if dietary != "" {
		tagCol := "LOWER(dietary_tags)"
		if postgres {
			tagCol = "LOWER(dietary_tags::text)"
		}
		for _, tag := range strings.Split(dietary, ",") {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			query = query.Where(tagCol+" LIKE ?", "%"+tag+"%")
		}
	}
	if !ordered {
		query = query.Order("popularity_score DESC")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []models.Recipe
	if err := query.Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]types.RecipeCandidate, 0, len(rows))
	for i := range rows {
		out = append(out, candidateFromRecipe(&rows[i]))
	}
	return out, nil
}

// CreateRecipe stores a recipe row, filling defaults and the embedding.
// Only the seeder and tests create recipes; generated candidates are never
// persisted.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	if recipe.CuisineType == "" {
		recipe.CuisineType = "global"
	}
	if recipe.Source == "" {
		recipe.Source = models.SourceStored
	}
	recipe.Embedding = GenerateEmbedding(RecipeEmbeddingText(recipe.Name, recipe.CuisineType, recipe.Ingredients))

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// RateRecipe upserts one session's rating and counts it toward popularity.
func (s *RecipeService) RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, rating int) error {
	if rating < 1 || rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if err := s.db.WithContext(ctx).First(&models.Recipe{}, "id = ?", recipeID).Error; err != nil {
		return err
	}

	row := models.RecipeRating{
		ID:       uuid.New(),
		RecipeID: recipeID,
		UserID:   userID,
		Rating:   rating,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}

	s.bumpPopularity(ctx, recipeID, popularityRate)
	return nil
}

// MarkCooked records that a session cooked the recipe, the strongest
// popularity signal.
func (s *RecipeService) MarkCooked(ctx context.Context, recipeID uuid.UUID) error {
	if err := s.db.WithContext(ctx).First(&models.Recipe{}, "id = ?", recipeID).Error; err != nil {
		return err
	}
	s.bumpPopularity(ctx, recipeID, popularityCook)
	return nil
}

func (s *RecipeService) attachRatings(ctx context.Context, recipeID uuid.UUID, cand *types.RecipeCandidate) {
	var stats struct {
		AvgRating   *float64
		RatingCount int64
	}
	err := s.db.WithContext(ctx).Model(&models.RecipeRating{}).
		Select("AVG(rating) as avg_rating, COUNT(rating) as rating_count").
		Where("recipe_id = ?", recipeID).
		Scan(&stats).Error
	if err != nil {
		s.logger.Warn("rating aggregate failed", zap.String("recipe_id", recipeID.String()), zap.Error(err))
		return
	}
	cand.AvgRating = stats.AvgRating
	cand.RatingCount = int(stats.RatingCount)
}

func (s *RecipeService) bumpPopularity(ctx context.Context, recipeID uuid.UUID, delta float64) {
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).
		UpdateColumn("popularity_score", gorm.Expr("popularity_score + ?", delta)).Error
	if err != nil {
		s.logger.Warn("popularity update failed", zap.String("recipe_id", recipeID.String()), zap.Error(err))
	}
}

func (s *RecipeService) logSearch(ctx context.Context, userID *uuid.UUID, ingredients []string, cuisine string, resultCount int) {
	entry := models.SearchLog{
		ID:          uuid.New(),
		UserID:      userID,
		Ingredients: models.JSONBStringArray(ingredients),
		CuisineType: cuisine,
		ResultCount: resultCount,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.logger.Warn("search log write failed", zap.Error(err))
	}
}

// responseCacheKey extends the suggestion fingerprint with the filters that
// change the stored side of the result.
func responseCacheKey(ingredients []string, cuisine string, dietary []string, difficulty, maxCookTime int) string {
	return fmt.Sprintf("search:response:%s:%d:%d",
		cache.Fingerprint(ingredients, cuisine, dietary), difficulty, maxCookTime)
}

func (s *RecipeService) cachedResponse(ctx context.Context, key string) (*types.SearchResponse, bool) {
	if s.redis == nil {
		return nil, false
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("response cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var resp types.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		s.logger.Warn("response cache entry was not decodable", zap.Error(err))
		return nil, false
	}
	resp.Cached = true
	return &resp, true
}

func (s *RecipeService) storeResponse(ctx context.Context, key string, resp *types.SearchResponse) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.responseTTL).Err(); err != nil {
		s.logger.Warn("response cache write failed", zap.Error(err))
	}
}

func candidateFromRecipe(r *models.Recipe) types.RecipeCandidate {
	id := r.ID
	return types.RecipeCandidate{
		ID:              &id,
		Name:            r.Name,
		Ingredients:     []string(r.Ingredients),
		Instructions:    r.Instructions,
		CuisineType:     r.CuisineType,
		DifficultyLevel: r.DifficultyLevel,
		CookTimeMinutes: r.CookTimeMinutes,
		ServingSize:     r.ServingSize,
		DietaryTags:     []string(r.DietaryTags),
		Source:          r.Source,
		PopularityScore: r.PopularityScore,
	}
}
