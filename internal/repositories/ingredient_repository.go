package repositories

import "foodgram/internal/models"

// IngredientRepository defines the interface for ingredient data access.
type IngredientRepository interface {
	GetAll() ([]models.Ingredient, error)
	SearchByPrefix(prefix string) ([]models.Ingredient, error)
	GetByID(id string) (*models.Ingredient, error)
	Create(ingredient *models.Ingredient) error
}
