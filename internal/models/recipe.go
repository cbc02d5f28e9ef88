package models

import "time"

// Recipe is the aggregate root owning its tag set and ingredient lines.
type Recipe struct {
	ID          string             `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AuthorID    string             `json:"author_id" gorm:"index;type:varchar(36);not null"`
	Author      User               `json:"-" gorm:"foreignKey:AuthorID"`
	Name        string             `json:"name" gorm:"type:varchar(200);not null"`
	Image       string             `json:"image" gorm:"type:varchar(500);not null"`
	Text        string             `json:"text" gorm:"type:text;not null"`
	CookingTime int                `json:"cooking_time" gorm:"not null"`
	Tags        []Tag              `json:"tags" gorm:"many2many:recipe_tags;"`
	Ingredients []RecipeIngredient `json:"ingredients" gorm:"foreignKey:RecipeID"`
	CreatedAt   time.Time          `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// RecipeIngredient is one ingredient line of a recipe.
type RecipeIngredient struct {
	ID           uint       `json:"-" gorm:"primaryKey"`
	RecipeID     string     `json:"recipe_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID string     `json:"ingredient_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient"`
	Ingredient   Ingredient `json:"-" gorm:"foreignKey:IngredientID"`
	Amount       int        `json:"amount" gorm:"not null;check:chk_recipe_ingredient_amount,amount >= 1"`
}

// RecipeTag is the join row between a recipe and one of its tags.
type RecipeTag struct {
	RecipeID string `gorm:"primaryKey;type:varchar(36)"`
	TagID    string `gorm:"primaryKey;type:varchar(36)"`
}

// IngredientAmount is an ingredient id with the amount a recipe needs.
type IngredientAmount struct {
	IngredientID string
	Amount       int
}
