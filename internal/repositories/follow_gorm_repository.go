package repositories

import (
	"foodgram/internal/models"

	"gorm.io/gorm"
)

// GORMFollowRepository is a GORM implementation of FollowRepository.
type GORMFollowRepository struct {
	db *gorm.DB
}

// NewGORMFollowRepository creates a new instance of GORMFollowRepository.
func NewGORMFollowRepository(db *gorm.DB) *GORMFollowRepository {
	return &GORMFollowRepository{db: db}
}

// Create stores the edge user -> author.
func (r *GORMFollowRepository) Create(userID, authorID string) error {
	follow := &models.Follow{UserID: userID, AuthorID: authorID}
	return wrapGormError(r.db.Create(follow).Error, "failed to follow %s by %s", authorID, userID)
}

// Delete removes the edge user -> author.
func (r *GORMFollowRepository) Delete(userID, authorID string) error {
	res := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	if res.Error != nil {
		return wrapGormError(res.Error, "failed to unfollow %s by %s", authorID, userID)
	}
	if res.RowsAffected == 0 {
		return wrapGormError(gorm.ErrRecordNotFound, "subscription of %s to %s", userID, authorID)
	}
	return nil
}

// Exists reports whether user follows author.
func (r *GORMFollowRepository) Exists(userID, authorID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, wrapGormError(err, "failed to check subscription of %s to %s", userID, authorID)
	}
	return count > 0, nil
}

// Followed reports which of authorIDs the user follows.
func (r *GORMFollowRepository) Followed(userID string, authorIDs []string) (map[string]bool, error) {
	followed := make(map[string]bool, len(authorIDs))
	if userID == "" || len(authorIDs) == 0 {
		return followed, nil
	}
	var ids []string
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, wrapGormError(err, "failed to load subscriptions of %s", userID)
	}
	for _, id := range ids {
		followed[id] = true
	}
	return followed, nil
}

// ListAuthors returns one page of the authors the user follows, in subscription order.
func (r *GORMFollowRepository) ListAuthors(userID string, page Page) ([]models.User, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN follows ON follows.author_id = users.id").
			Where("follows.user_id = ?", userID)
	}
	var total int64
	if err := r.db.Model(&models.User{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, wrapGormError(err, "failed to count subscriptions of %s", userID)
	}
	var authors []models.User
	err := r.db.Model(&models.User{}).Scopes(scope).
		Select("users.*").
		Order("follows.id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&authors).Error
	if err != nil {
		return nil, 0, wrapGormError(err, "failed to list subscriptions of %s", userID)
	}
	return authors, total, nil
}
