package services

import (
	"fmt"

	"foodgram/internal/metrics"
	"foodgram/internal/repositories"
)

// InteractionService manages the per-user favorite and shopping cart sets.
type InteractionService struct {
	interactions repositories.InteractionRepository
	recipes      repositories.RecipeRepository
	events       EventPublisher
}

// NewInteractionService creates a new InteractionService. events may be nil.
func NewInteractionService(interactions repositories.InteractionRepository, recipes repositories.RecipeRepository, events EventPublisher) *InteractionService {
	return &InteractionService{
		interactions: interactions,
		recipes:      recipes,
		events:       events,
	}
}

// Add puts a recipe into the user's set of the given kind. Adding a recipe
// that is already a member fails with ErrConflict.
func (s *InteractionService) Add(kind repositories.InteractionKind, userID, recipeID string) (*ShortRecipeView, error) {
	view, err := s.add(kind, userID, recipeID)
	metrics.InteractionToggles.WithLabelValues(string(kind), "add", metrics.Result(err)).Inc()
	return view, err
}

func (s *InteractionService) add(kind repositories.InteractionKind, userID, recipeID string) (*ShortRecipeView, error) {
	recipe, err := s.recipes.GetByID(recipeID)
	if err != nil {
		return nil, translate(err, "recipe %s", recipeID)
	}
	exists, err := s.interactions.Exists(kind, userID, recipeID)
	if err != nil {
		return nil, translate(err, "failed to check %s", kind)
	}
	if exists {
		return nil, fmt.Errorf("%w: recipe %s is already in %s", ErrConflict, recipeID, kind)
	}
	// A concurrent add that passed the check is rejected by the unique index.
	if err := s.interactions.Add(kind, userID, recipeID); err != nil {
		return nil, translate(err, "recipe %s is already in %s", recipeID, kind)
	}
	publishEvent(s.events, Event{Type: string(kind) + ".added", RecipeID: recipeID, UserID: userID})
	view := newShortRecipeView(*recipe)
	return &view, nil
}

// Remove takes a recipe out of the user's set of the given kind. Removing a
// recipe that is not a member fails with ErrNotFound.
func (s *InteractionService) Remove(kind repositories.InteractionKind, userID, recipeID string) error {
	err := s.remove(kind, userID, recipeID)
	metrics.InteractionToggles.WithLabelValues(string(kind), "remove", metrics.Result(err)).Inc()
	return err
}

func (s *InteractionService) remove(kind repositories.InteractionKind, userID, recipeID string) error {
	if _, err := s.recipes.GetByID(recipeID); err != nil {
		return translate(err, "recipe %s", recipeID)
	}
	if err := s.interactions.Remove(kind, userID, recipeID); err != nil {
		return translate(err, "recipe %s is not in %s", recipeID, kind)
	}
	publishEvent(s.events, Event{Type: string(kind) + ".removed", RecipeID: recipeID, UserID: userID})
	return nil
}

// AddFavorite marks a recipe as a favorite of the user.
func (s *InteractionService) AddFavorite(userID, recipeID string) (*ShortRecipeView, error) {
	return s.Add(repositories.KindFavorite, userID, recipeID)
}

// RemoveFavorite unmarks a favorite recipe.
func (s *InteractionService) RemoveFavorite(userID, recipeID string) error {
	return s.Remove(repositories.KindFavorite, userID, recipeID)
}

// AddToCart puts a recipe into the user's shopping cart.
func (s *InteractionService) AddToCart(userID, recipeID string) (*ShortRecipeView, error) {
	return s.Add(repositories.KindShoppingCart, userID, recipeID)
}

// RemoveFromCart takes a recipe out of the user's shopping cart.
func (s *InteractionService) RemoveFromCart(userID, recipeID string) error {
	return s.Remove(repositories.KindShoppingCart, userID, recipeID)
}
