package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nileplate/backend/config"
	"github.com/nileplate/backend/internal/database"
	"github.com/nileplate/backend/internal/logging"
	"github.com/nileplate/backend/internal/models"
	"github.com/nileplate/backend/internal/service"
)

type seedRecipe struct {
	name         string
	ingredients  []string
	instructions string
	difficulty   int
	cookTime     int
	servings     int
	calories     int
	dietaryTags  []string
}

// The starter catalog: authentic Sudanese dishes so the store is culturally
// grounded from the first request.
var sudaneseRecipes = []seedRecipe{
	{
		name:         "Ful Medames",
		ingredients:  []string{"fava beans", "olive oil", "lemon juice", "garlic", "cumin", "salt", "tomatoes", "onions"},
		instructions: "1. Soak fava beans overnight and cook until tender. 2. Mash partially, keeping some texture. 3. Heat olive oil in pan, sauté garlic and onions. 4. Add mashed beans, season with cumin, salt, and lemon juice. 5. Serve hot with diced tomatoes on top. 6. Traditionally served with flatbread.",
		difficulty:   2,
		cookTime:     45,
		servings:     4,
		calories:     280,
		dietaryTags:  []string{"vegetarian", "vegan", "high-protein", "gluten-free"},
	},
	{
		name:         "Sudanese Bamia (Okra Stew)",
		ingredients:  []string{"okra", "lamb", "onions", "tomatoes", "garlic", "coriander", "cardamom", "cinnamon", "bay leaves", "salt", "pepper"},
		instructions: "1. Cut okra into rounds, salt and let sit for 30 minutes. 2. Brown lamb pieces in large pot. 3. Add onions, cook until soft. 4. Add spices, garlic, cook for 1 minute. 5. Add tomatoes and okra, cover with water. 6. Simmer for 1 hour until meat is tender. 7. Serve with rice or bread.",
		difficulty:   3,
		cookTime:     90,
		servings:     6,
		calories:     320,
		dietaryTags:  []string{"high-protein", "gluten-free"},
	},
	{
		name:         "Kisra (Sudanese Flatbread)",
		ingredients:  []string{"sorghum flour", "water", "salt", "yeast"},
		instructions: "1. Mix sorghum flour with warm water to make a smooth batter. 2. Add salt and yeast, mix well. 3. Let ferment for 2-3 hours until bubbly. 4. Heat a flat pan over medium heat. 5. Pour batter thinly across pan, like making crepes. 6. Cook until edges lift and bottom is golden. 7. Serve warm with stews or dips.",
		difficulty:   4,
		cookTime:     30,
		servings:     8,
		calories:     120,
		dietaryTags:  []string{"vegan", "gluten-free", "fermented"},
	},
	{
		name:         "Sudanese Mulah (Green Stew)",
		ingredients:  []string{"spinach", "collard greens", "beef", "onions", "peanut butter", "tomato paste", "garlic", "ginger", "chili", "salt"},
		instructions: "1. Clean and chop greens finely. 2. Brown beef in large pot. 3. Add onions, cook until soft. 4. Add garlic, ginger, chili, cook 2 minutes. 5. Add tomato paste, cook 3 minutes. 6. Add greens and water, simmer 30 minutes. 7. Stir in peanut butter until dissolved. 8. Season with salt, simmer 15 more minutes.",
		difficulty:   3,
		cookTime:     75,
		servings:     6,
		calories:     350,
		dietaryTags:  []string{"high-protein", "high-iron", "gluten-free"},
	},
}

// ingredientCatalog backs autocomplete and the fallback category filters.
var ingredientCatalog = []struct {
	category string
	names    []string
}{
	{models.CategoryProteins, []string{
		"chicken", "beef", "lamb", "fish", "eggs", "tofu", "lentils", "chickpeas", "beans",
	}},
	{models.CategoryVegetables, []string{
		"tomatoes", "onions", "garlic", "carrots", "potatoes", "spinach", "broccoli",
		"bell peppers", "mushrooms", "zucchini", "eggplant", "okra", "cabbage",
	}},
	{models.CategoryGrains, []string{
		"rice", "pasta", "bread", "flour", "quinoa", "barley", "oats", "couscous",
	}},
	{models.CategorySpices, []string{
		"salt", "pepper", "cumin", "coriander", "turmeric", "paprika", "cinnamon",
		"cardamom", "ginger", "basil", "parsley", "cilantro", "mint",
	}},
	{models.CategoryPantry, []string{
		"olive oil", "vegetable oil", "butter", "coconut oil", "vinegar", "lemon juice",
		"soy sauce", "tomato paste", "coconut milk", "peanut butter",
	}},
	{models.CategorySudanese, []string{
		"fava beans", "sorghum flour", "peanuts", "sesame seeds", "tamarind", "hibiscus",
	}},
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Init(cfg.LogLevel, config.IsProduction())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.RunMigrations(db, "migrations", logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	if err := seedRecipes(db, logger); err != nil {
		logger.Fatal("recipe seeding failed", zap.Error(err))
	}
	if err := seedIngredients(db, logger); err != nil {
		logger.Fatal("ingredient seeding failed", zap.Error(err))
	}
}

func seedRecipes(db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Recipe{}).Where("cuisine_type = ?", "sudanese").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("sudanese recipes already seeded", zap.Int64("count", count))
		return nil
	}

	for _, r := range sudaneseRecipes {
		calories := r.calories
		recipe := models.Recipe{
			ID:                 uuid.New(),
			Name:               r.name,
			CuisineType:        "sudanese",
			Ingredients:        models.JSONBStringArray(r.ingredients),
			Instructions:       r.instructions,
			DifficultyLevel:    r.difficulty,
			CookTimeMinutes:    r.cookTime,
			ServingSize:        r.servings,
			CaloriesPerServing: &calories,
			DietaryTags:        models.JSONBStringArray(r.dietaryTags),
			Source:             models.SourceStored,
			Embedding:          service.GenerateEmbedding(service.RecipeEmbeddingText(r.name, "sudanese", r.ingredients)),
		}
		if err := db.Create(&recipe).Error; err != nil {
			logger.Warn("recipe seed failed", zap.String("name", r.name), zap.Error(err))
			continue
		}
		logger.Info("seeded recipe", zap.String("name", r.name))
	}
	return nil
}

func seedIngredients(db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&models.CommonIngredient{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("ingredient catalog already seeded", zap.Int64("count", count))
		return nil
	}

	var seeded int
	for _, group := range ingredientCatalog {
		for _, name := range group.names {
			row := models.CommonIngredient{
				ID:       uuid.New(),
				Name:     name,
				Category: group.category,
			}
			if err := db.Create(&row).Error; err != nil {
				logger.Warn("ingredient seed failed", zap.String("name", name), zap.Error(err))
				continue
			}
			seeded++
		}
	}
	logger.Info("seeded ingredient catalog", zap.Int("count", seeded))
	return nil
}
