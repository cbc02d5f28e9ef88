package models

// Ingredient is reference data: a purchasable item and the unit it is measured in.
type Ingredient struct {
	ID              string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name            string `json:"name" gorm:"index;type:varchar(200);not null"`
	MeasurementUnit string `json:"measurement_unit" gorm:"type:varchar(200);not null"`
}
