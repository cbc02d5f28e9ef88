package models

import "time"

// Favorite records that a user marked a recipe as favorite.
type Favorite struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_recipe;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ShoppingCart records that a user put a recipe in their shopping cart.
type ShoppingCart struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_recipe"`
	RecipeID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_recipe;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ShoppingListItem is one aggregated purchase line.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}
