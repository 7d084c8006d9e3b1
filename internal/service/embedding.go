package service

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// GenerateEmbedding returns a deterministic embedding for the given text,
// counting total length, vowels and consonants. It stands in for a real
// embedding model so similarity ordering works without another upstream call.
func GenerateEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels, consonants float32
	for _, r := range text {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		} else if r >= 'a' && r <= 'z' {
			consonants++
		}
	}
	length := float32(len(text))
	return pgvector.NewVector([]float32{length, vowels, consonants})
}

// RecipeEmbeddingText flattens the fields that matter for recipe similarity
// into the text the embedding is computed over.
func RecipeEmbeddingText(name, cuisine string, ingredients []string) string {
	return name + " " + cuisine + " " + strings.Join(ingredients, " ")
}
