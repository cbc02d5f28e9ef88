package services

import (
	"foodgram/internal/models"
	"foodgram/internal/repositories"
)

// UserService serves user profiles relative to a caller.
type UserService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repositories.UserRepository, follows repositories.FollowRepository) *UserService {
	return &UserService{users: users, follows: follows}
}

// Get returns the profile of id as seen by callerID ("" when anonymous).
func (s *UserService) Get(id, callerID string) (*UserView, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, translate(err, "user %s", id)
	}
	views, err := s.project([]models.User{*user}, callerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Me returns the profile of the authenticated user.
func (s *UserService) Me(userID string) (*UserView, error) {
	return s.Get(userID, userID)
}

// List returns one page of users ordered by username.
func (s *UserService) List(callerID string, page repositories.Page) (*Paginated[UserView], error) {
	users, total, err := s.users.List(page)
	if err != nil {
		return nil, translate(err, "failed to list users")
	}
	views, err := s.project(users, callerID)
	if err != nil {
		return nil, err
	}
	return newPaginated(views, total, page), nil
}

func (s *UserService) project(users []models.User, callerID string) ([]UserView, error) {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	followed, err := s.follows.Followed(callerID, ids)
	if err != nil {
		return nil, translate(err, "failed to load subscriptions")
	}
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, newUserView(u, followed[u.ID] && u.ID != callerID))
	}
	return views, nil
}
