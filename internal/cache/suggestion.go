package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"sync"

	"github.com/nileplate/backend/internal/ranking"
	"github.com/nileplate/backend/internal/types"
)

// DefaultCapacity bounds the suggestion cache to the same size the upstream
// request deduplication was tuned for.
const DefaultCapacity = 100

// Fingerprint derives the cache key for a suggestion request: ingredients are
// normalized and sorted, dietary tags sorted, cuisine taken verbatim, and the
// triple is serialized deterministically and hashed. Reordered but
// semantically identical requests map to the same key.
func Fingerprint(ingredients []string, cuisine string, dietary []string) string {
	ings := ranking.NormalizeIngredients(ingredients)
	sort.Strings(ings)

	diet := make([]string, len(dietary))
	copy(diet, dietary)
	sort.Strings(diet)

	payload, _ := json.Marshal([]interface{}{ings, cuisine, diet})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// SuggestionCache is a bounded in-memory store of generated suggestion sets.
// When full, Put evicts the least-recently-inserted key; Get never refreshes
// recency, and re-Put of a live key moves it to the newest slot.
type SuggestionCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]types.RecipeCandidate
	order    []string
}

// NewSuggestionCache returns a cache bounded to capacity entries. A
// non-positive capacity falls back to DefaultCapacity.
func NewSuggestionCache(capacity int) *SuggestionCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SuggestionCache{
		capacity: capacity,
		entries:  make(map[string][]types.RecipeCandidate, capacity),
	}
}

// Get returns the cached suggestion set for key, if present.
func (c *SuggestionCache) Get(key string) ([]types.RecipeCandidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[key]
	return v, ok
}

// Put stores value under key, evicting the oldest insertion first when the
// cache is at capacity.
func (c *SuggestionCache) Put(key string, value []types.RecipeCandidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.removeFromOrder(key)
	} else if len(c.entries) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = value
	c.order = append(c.order, key)
}

// Len reports the number of live entries.
func (c *SuggestionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *SuggestionCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
