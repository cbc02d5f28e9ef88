package repositories

import "foodgram/internal/models"

// RecipeFilter narrows a recipe listing. Zero values mean "no restriction".
type RecipeFilter struct {
	AuthorID    string
	TagSlugs    []string
	FavoritedBy string
	InCartOf    string
}

// RecipeRepository defines the interface for recipe aggregate persistence.
// Create, Update and Delete write the recipe together with its tag and
// ingredient rows in a single transaction.
type RecipeRepository interface {
	Create(recipe *models.Recipe, tagIDs []string, lines []models.IngredientAmount) error
	Update(recipe *models.Recipe, tagIDs []string, lines []models.IngredientAmount) error
	Delete(id string) error
	GetByID(id string) (*models.Recipe, error)
	List(filter RecipeFilter, page Page) ([]models.Recipe, int64, error)
	ListByAuthor(authorID string, limit int) ([]models.Recipe, error)
	CountByAuthors(authorIDs []string) (map[string]int64, error)
}
