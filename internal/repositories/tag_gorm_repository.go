package repositories

import (
	"foodgram/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{db: db}
}

// GetAll retrieves all tags ordered by name.
func (r *GORMTagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Order("name").Find(&tags).Error; err != nil {
		return nil, wrapGormError(err, "failed to get all tags")
	}
	return tags, nil
}

// GetByID retrieves a single tag by its ID.
func (r *GORMTagRepository) GetByID(id string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "id = ?", id).Error; err != nil {
		return nil, wrapGormError(err, "tag with ID %s", id)
	}
	return &tag, nil
}

// GetByIDs returns the tags that exist among ids. Unknown ids are skipped.
func (r *GORMTagRepository) GetByIDs(ids []string) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, wrapGormError(err, "failed to get tags")
	}
	return tags, nil
}

// Create stores a new tag.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	return wrapGormError(r.db.Create(tag).Error, "failed to create tag %s", tag.Slug)
}
