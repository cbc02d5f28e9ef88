package repositories

import (
	"foodgram/internal/models"

	"gorm.io/gorm"
)

// ShoppingListRepository folds the ingredient lines of a user's shopping cart.
type ShoppingListRepository interface {
	Aggregate(userID string) ([]models.ShoppingListItem, error)
}

// GORMShoppingListRepository is a GORM implementation of ShoppingListRepository.
type GORMShoppingListRepository struct {
	db *gorm.DB
}

// NewGORMShoppingListRepository creates a new instance of GORMShoppingListRepository.
func NewGORMShoppingListRepository(db *gorm.DB) *GORMShoppingListRepository {
	return &GORMShoppingListRepository{db: db}
}

// Aggregate sums the amounts of every ingredient line of every recipe in the
// user's cart, grouped by ingredient name and unit. It runs as one statement
// so the result reflects a single snapshot.
func (r *GORMShoppingListRepository) Aggregate(userID string) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	err := r.db.Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&items).Error
	if err != nil {
		return nil, wrapGormError(err, "failed to aggregate shopping cart of user %s", userID)
	}
	return items, nil
}
