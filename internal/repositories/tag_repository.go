package repositories

import "foodgram/internal/models"

// TagRepository defines the interface for tag data access.
type TagRepository interface {
	GetAll() ([]models.Tag, error)
	GetByID(id string) (*models.Tag, error)
	GetByIDs(ids []string) ([]models.Tag, error)
	Create(tag *models.Tag) error
}
