package repositories

import (
	"database/sql"
	"time"

	"foodgram/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const recipeOrder = "recipes.created_at DESC, recipes.author_id"

// snapshotTx makes every statement of a hydrated read observe the same
// committed state. The root row and each preload are separate queries.
var snapshotTx = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// GORMRecipeRepository is a GORM implementation of RecipeRepository.
type GORMRecipeRepository struct {
	db *gorm.DB
}

// NewGORMRecipeRepository creates a new instance of GORMRecipeRepository.
func NewGORMRecipeRepository(db *gorm.DB) *GORMRecipeRepository {
	return &GORMRecipeRepository{db: db}
}

// Create inserts the recipe, its tag rows and its ingredient lines atomically.
func (r *GORMRecipeRepository) Create(recipe *models.Recipe, tagIDs []string, lines []models.IngredientAmount) error {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return insertRecipeChildren(tx, recipe.ID, tagIDs, lines)
	})
	return wrapGormError(err, "failed to create recipe %s", recipe.Name)
}

// Update overwrites the recipe fields and replaces its whole tag set and
// ingredient line set atomically.
func (r *GORMRecipeRepository) Update(recipe *models.Recipe, tagIDs []string, lines []models.IngredientAmount) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]interface{}{
			"name":         recipe.Name,
			"image":        recipe.Image,
			"text":         recipe.Text,
			"cooking_time": recipe.CookingTime,
			"updated_at":   time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return insertRecipeChildren(tx, recipe.ID, tagIDs, lines)
	})
	return wrapGormError(err, "failed to update recipe %s", recipe.ID)
}

func insertRecipeChildren(tx *gorm.DB, recipeID string, tagIDs []string, lines []models.IngredientAmount) error {
	tags := make([]models.RecipeTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, models.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	if len(tags) > 0 {
		if err := tx.Create(&tags).Error; err != nil {
			return err
		}
	}
	rows := make([]models.RecipeIngredient, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		})
	}
	if len(rows) > 0 {
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a recipe together with its lines, tag rows, favorites and
// shopping cart entries.
func (r *GORMRecipeRepository) Delete(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&models.RecipeIngredient{},
			&models.RecipeTag{},
			&models.Favorite{},
			&models.ShoppingCart{},
		} {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&models.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return wrapGormError(err, "failed to delete recipe %s", id)
}

// GetByID retrieves a fully hydrated recipe.
func (r *GORMRecipeRepository) GetByID(id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return hydrated(tx).First(&recipe, "recipes.id = ?", id).Error
	}, snapshotTx)
	if err != nil {
		return nil, wrapGormError(err, "recipe with ID %s", id)
	}
	return &recipe, nil
}

// List returns one page of hydrated recipes matching filter, newest first.
// The count and the page come from the same snapshot.
func (r *GORMRecipeRepository) List(filter RecipeFilter, page Page) ([]models.Recipe, int64, error) {
	scope := r.filterScope(filter)
	var (
		total   int64
		recipes []models.Recipe
	)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Recipe{}).Scopes(scope).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			return nil
		}
		return hydrated(tx).Scopes(scope).
			Order(recipeOrder).
			Offset(page.Offset()).
			Limit(page.Limit()).
			Find(&recipes).Error
	}, snapshotTx)
	if err != nil {
		return nil, 0, wrapGormError(err, "failed to list recipes")
	}
	return recipes, total, nil
}

// ListByAuthor returns the newest recipes of an author. A non-positive limit returns all of them.
func (r *GORMRecipeRepository) ListByAuthor(authorID string, limit int) ([]models.Recipe, error) {
	query := r.db.Where("author_id = ?", authorID).Order(recipeOrder)
	if limit > 0 {
		query = query.Limit(limit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, wrapGormError(err, "failed to list recipes of author %s", authorID)
	}
	return recipes, nil
}

// CountByAuthors returns the number of recipes of each author. Authors
// without recipes are absent from the map.
func (r *GORMRecipeRepository) CountByAuthors(authorIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		AuthorID string
		Total    int64
	}
	err := r.db.Model(&models.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapGormError(err, "failed to count recipes by author")
	}
	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}
	return counts, nil
}

func hydrated(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id") }).
		Preload("Ingredients.Ingredient")
}

func (r *GORMRecipeRepository) filterScope(filter RecipeFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.AuthorID != "" {
			db = db.Where("recipes.author_id = ?", filter.AuthorID)
		}
		if len(filter.TagSlugs) > 0 {
			db = db.Where("recipes.id IN (?)", r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs))
		}
		if filter.FavoritedBy != "" {
			db = db.Where("recipes.id IN (?)", r.db.Model(&models.Favorite{}).
				Select("recipe_id").
				Where("user_id = ?", filter.FavoritedBy))
		}
		if filter.InCartOf != "" {
			db = db.Where("recipes.id IN (?)", r.db.Model(&models.ShoppingCart{}).
				Select("recipe_id").
				Where("user_id = ?", filter.InCartOf))
		}
		return db
	}
}
