package repositories

import "foodgram/internal/models"

// FollowRepository defines the interface for the follow graph.
type FollowRepository interface {
	Create(userID, authorID string) error
	Delete(userID, authorID string) error
	Exists(userID, authorID string) (bool, error)
	Followed(userID string, authorIDs []string) (map[string]bool, error)
	ListAuthors(userID string, page Page) ([]models.User, int64, error)
}
