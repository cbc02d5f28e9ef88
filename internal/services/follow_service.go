package services

import (
	"fmt"

	"foodgram/internal/metrics"
	"foodgram/internal/models"
	"foodgram/internal/repositories"
)

// FollowService manages the directed follower -> author graph.
type FollowService struct {
	follows repositories.FollowRepository
	users   repositories.UserRepository
	recipes repositories.RecipeRepository
	events  EventPublisher
}

// NewFollowService creates a new FollowService. events may be nil.
func NewFollowService(follows repositories.FollowRepository, users repositories.UserRepository, recipes repositories.RecipeRepository, events EventPublisher) *FollowService {
	return &FollowService{
		follows: follows,
		users:   users,
		recipes: recipes,
		events:  events,
	}
}

// Follow subscribes userID to authorID and returns the author with up to
// recipesLimit of their newest recipes (all of them when recipesLimit <= 0).
func (s *FollowService) Follow(userID, authorID string, recipesLimit int) (*SubscriptionView, error) {
	view, err := s.follow(userID, authorID, recipesLimit)
	metrics.InteractionToggles.WithLabelValues("follow", "add", metrics.Result(err)).Inc()
	return view, err
}

func (s *FollowService) follow(userID, authorID string, recipesLimit int) (*SubscriptionView, error) {
	if userID == authorID {
		return nil, fmt.Errorf("%w: user %s", ErrSelfFollow, userID)
	}
	author, err := s.users.GetByID(authorID)
	if err != nil {
		return nil, translate(err, "author %s", authorID)
	}
	exists, err := s.follows.Exists(userID, authorID)
	if err != nil {
		return nil, translate(err, "failed to check subscription")
	}
	if exists {
		return nil, fmt.Errorf("%w: already subscribed to %s", ErrConflict, author.Username)
	}
	if err := s.follows.Create(userID, authorID); err != nil {
		return nil, translate(err, "already subscribed to %s", author.Username)
	}
	publishEvent(s.events, Event{Type: "follow.added", UserID: userID, AuthorID: authorID})

	views, err := s.subscriptions([]models.User{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Unfollow removes the subscription of userID to authorID.
func (s *FollowService) Unfollow(userID, authorID string) error {
	err := s.unfollow(userID, authorID)
	metrics.InteractionToggles.WithLabelValues("follow", "remove", metrics.Result(err)).Inc()
	return err
}

func (s *FollowService) unfollow(userID, authorID string) error {
	if _, err := s.users.GetByID(authorID); err != nil {
		return translate(err, "author %s", authorID)
	}
	if err := s.follows.Delete(userID, authorID); err != nil {
		return translate(err, "not subscribed to %s", authorID)
	}
	publishEvent(s.events, Event{Type: "follow.removed", UserID: userID, AuthorID: authorID})
	return nil
}

// ListFollowing returns one page of the authors userID follows.
func (s *FollowService) ListFollowing(userID string, page repositories.Page, recipesLimit int) (*Paginated[SubscriptionView], error) {
	authors, total, err := s.follows.ListAuthors(userID, page)
	if err != nil {
		return nil, translate(err, "failed to list subscriptions")
	}
	views, err := s.subscriptions(authors, recipesLimit)
	if err != nil {
		return nil, err
	}
	return newPaginated(views, total, page), nil
}

// IsFollowing reports whether callerID follows authorID. It is false for an
// anonymous caller and for the author themselves.
func (s *FollowService) IsFollowing(callerID, authorID string) (bool, error) {
	if callerID == "" || callerID == authorID {
		return false, nil
	}
	ok, err := s.follows.Exists(callerID, authorID)
	if err != nil {
		return false, translate(err, "failed to check subscription")
	}
	return ok, nil
}

// subscriptions projects followed authors. is_subscribed is always true here.
func (s *FollowService) subscriptions(authors []models.User, recipesLimit int) ([]SubscriptionView, error) {
	ids := make([]string, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}
	counts, err := s.recipes.CountByAuthors(ids)
	if err != nil {
		return nil, translate(err, "failed to count recipes")
	}

	views := make([]SubscriptionView, 0, len(authors))
	for _, a := range authors {
		recipes, err := s.recipes.ListByAuthor(a.ID, recipesLimit)
		if err != nil {
			return nil, translate(err, "failed to list recipes of %s", a.ID)
		}
		short := make([]ShortRecipeView, 0, len(recipes))
		for _, r := range recipes {
			short = append(short, newShortRecipeView(r))
		}
		views = append(views, SubscriptionView{
			UserView:     newUserView(a, true),
			Recipes:      short,
			RecipesCount: counts[a.ID],
		})
	}
	return views, nil
}
