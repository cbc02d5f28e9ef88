package repositories

import (
	"fmt"

	"foodgram/internal/metrics"
	"foodgram/internal/models"

	lru "github.com/hashicorp/golang-lru"
)

// CachedIngredientRepository serves GetByID from an LRU cache. Ingredients
// are never mutated once created, so entries never go stale.
type CachedIngredientRepository struct {
	IngredientRepository
	cache *lru.Cache
}

// NewCachedIngredientRepository wraps next with a cache holding up to size ingredients.
func NewCachedIngredientRepository(next IngredientRepository, size int) (*CachedIngredientRepository, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingredient cache: %w", err)
	}
	return &CachedIngredientRepository{IngredientRepository: next, cache: cache}, nil
}

// GetByID returns the ingredient from the cache, falling back to the wrapped repository.
func (r *CachedIngredientRepository) GetByID(id string) (*models.Ingredient, error) {
	if v, ok := r.cache.Get(id); ok {
		ingredient := v.(models.Ingredient)
		return &ingredient, nil
	}
	ingredient, err := r.IngredientRepository.GetByID(id)
	if err != nil {
		return nil, err
	}
	r.cache.Add(id, *ingredient)
	metrics.IngredientCacheSize.Set(float64(r.cache.Len()))
	return ingredient, nil
}

// Len reports the number of cached ingredients.
func (r *CachedIngredientRepository) Len() int {
	return r.cache.Len()
}
