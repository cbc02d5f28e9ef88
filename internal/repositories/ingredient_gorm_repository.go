package repositories

import (
	"strings"

	"foodgram/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GORMIngredientRepository is a GORM implementation of IngredientRepository.
type GORMIngredientRepository struct {
	db *gorm.DB
}

// NewGORMIngredientRepository creates a new instance of GORMIngredientRepository.
func NewGORMIngredientRepository(db *gorm.DB) *GORMIngredientRepository {
	return &GORMIngredientRepository{db: db}
}

// GetAll retrieves all ingredients ordered by name.
func (r *GORMIngredientRepository) GetAll() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.Order("name").Find(&ingredients).Error; err != nil {
		return nil, wrapGormError(err, "failed to get all ingredients")
	}
	return ingredients, nil
}

// SearchByPrefix returns ingredients whose name starts with prefix, ignoring case.
// Both sides are folded by the database's LOWER. Postgres folds the full
// Unicode range; SQLite folds ASCII only, so there a non-ASCII prefix must
// match case ("Мук" finds "Мука", "мук" does not).
func (r *GORMIngredientRepository) SearchByPrefix(prefix string) ([]models.Ingredient, error) {
	pattern := likeEscaper.Replace(prefix) + "%"
	var ingredients []models.Ingredient
	err := r.db.Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, pattern).Order("name").Find(&ingredients).Error
	if err != nil {
		return nil, wrapGormError(err, "failed to search ingredients by %q", prefix)
	}
	return ingredients, nil
}

// GetByID retrieves a single ingredient by its ID.
func (r *GORMIngredientRepository) GetByID(id string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, wrapGormError(err, "ingredient with ID %s", id)
	}
	return &ingredient, nil
}

// Create stores a new ingredient.
func (r *GORMIngredientRepository) Create(ingredient *models.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = uuid.New().String()
	}
	return wrapGormError(r.db.Create(ingredient).Error, "failed to create ingredient %s", ingredient.Name)
}
