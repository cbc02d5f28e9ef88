package repositories

import (
	"foodgram/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return wrapGormError(r.db.Create(user).Error, "failed to create user %s", user.Username)
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, wrapGormError(err, "user with username %s", username)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapGormError(err, "user with email %s", email)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapGormError(err, "user with ID %s", id)
	}
	return &user, nil
}

// UpdatePassword stores a new password hash for the user.
func (r *GORMUserRepository) UpdatePassword(id string, passwordHash string) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("password", passwordHash)
	if res.Error != nil {
		return wrapGormError(res.Error, "failed to update password for user %s", id)
	}
	if res.RowsAffected == 0 {
		return wrapGormError(gorm.ErrRecordNotFound, "user with ID %s", id)
	}
	return nil
}

// List returns one page of users ordered by username.
func (r *GORMUserRepository) List(page Page) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, wrapGormError(err, "failed to count users")
	}
	var users []models.User
	err := r.db.Order("username").Offset(page.Offset()).Limit(page.Limit()).Find(&users).Error
	if err != nil {
		return nil, 0, wrapGormError(err, "failed to list users")
	}
	return users, total, nil
}
