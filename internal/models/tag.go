package models

// Tag is reference data attached to recipes.
type Tag struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name  string `json:"name" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Color string `json:"color" gorm:"type:varchar(7)" validate:"omitempty,hexcolor,len=7"`
	Slug  string `json:"slug" gorm:"uniqueIndex;type:varchar(200);not null" validate:"required,max=200,slug"`
}
