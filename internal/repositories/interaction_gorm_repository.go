package repositories

import (
	"fmt"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// GORMInteractionRepository is a GORM implementation of InteractionRepository.
type GORMInteractionRepository struct {
	db *gorm.DB
}

// NewGORMInteractionRepository creates a new instance of GORMInteractionRepository.
func NewGORMInteractionRepository(db *gorm.DB) *GORMInteractionRepository {
	return &GORMInteractionRepository{db: db}
}

func (k InteractionKind) row(userID, recipeID string) (interface{}, error) {
	switch k {
	case KindFavorite:
		return &models.Favorite{UserID: userID, RecipeID: recipeID}, nil
	case KindShoppingCart:
		return &models.ShoppingCart{UserID: userID, RecipeID: recipeID}, nil
	}
	return nil, fmt.Errorf("unknown interaction kind %q", k)
}

// Add records the (user, recipe) pair.
func (r *GORMInteractionRepository) Add(kind InteractionKind, userID, recipeID string) error {
	row, err := kind.row(userID, recipeID)
	if err != nil {
		return err
	}
	return wrapGormError(r.db.Create(row).Error, "failed to add recipe %s to %s of user %s", recipeID, kind, userID)
}

// Remove deletes the (user, recipe) pair.
func (r *GORMInteractionRepository) Remove(kind InteractionKind, userID, recipeID string) error {
	row, err := kind.row("", "")
	if err != nil {
		return err
	}
	res := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(row)
	if res.Error != nil {
		return wrapGormError(res.Error, "failed to remove recipe %s from %s of user %s", recipeID, kind, userID)
	}
	if res.RowsAffected == 0 {
		return wrapGormError(gorm.ErrRecordNotFound, "recipe %s in %s of user %s", recipeID, kind, userID)
	}
	return nil
}

// Exists reports whether the (user, recipe) pair is recorded.
func (r *GORMInteractionRepository) Exists(kind InteractionKind, userID, recipeID string) (bool, error) {
	row, err := kind.row("", "")
	if err != nil {
		return false, err
	}
	var count int64
	err = r.db.Model(row).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	if err != nil {
		return false, wrapGormError(err, "failed to check %s of user %s", kind, userID)
	}
	return count > 0, nil
}

// Members reports which of recipeIDs belong to the user's set.
func (r *GORMInteractionRepository) Members(kind InteractionKind, userID string, recipeIDs []string) (map[string]bool, error) {
	members := make(map[string]bool, len(recipeIDs))
	if userID == "" || len(recipeIDs) == 0 {
		return members, nil
	}
	row, err := kind.row("", "")
	if err != nil {
		return nil, err
	}
	var ids []string
	err = r.db.Model(row).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, wrapGormError(err, "failed to load %s of user %s", kind, userID)
	}
	for _, id := range ids {
		members[id] = true
	}
	return members, nil
}
