package services

import (
	"foodgram/internal/models"
	"foodgram/internal/repositories"
)

// UserView is the public representation of a user relative to a caller.
type UserView struct {
	Email        string `json:"email"`
	ID           string `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// IngredientLineView is an ingredient denormalized with the amount one recipe needs.
type IngredientLineView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is the read projection of a recipe aggregate.
type RecipeView struct {
	ID               string               `json:"id"`
	Tags             []models.Tag         `json:"tags"`
	Author           UserView             `json:"author"`
	Ingredients      []IngredientLineView `json:"ingredients"`
	IsFavorited      bool                 `json:"is_favorited"`
	IsInShoppingCart bool                 `json:"is_in_shopping_cart"`
	Name             string               `json:"name"`
	Image            string               `json:"image"`
	Text             string               `json:"text"`
	CookingTime      int                  `json:"cooking_time"`
}

// ShortRecipeView is the compact recipe shape returned by toggles and subscriptions.
type ShortRecipeView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionView is a followed author with a preview of their recipes.
type SubscriptionView struct {
	UserView
	Recipes      []ShortRecipeView `json:"recipes"`
	RecipesCount int64             `json:"recipes_count"`
}

// Paginated is one page of results plus the total number of matches.
type Paginated[T any] struct {
	Count   int64 `json:"count"`
	Page    int   `json:"page"`
	Results []T   `json:"results"`
}

func newPaginated[T any](results []T, total int64, page repositories.Page) *Paginated[T] {
	if results == nil {
		results = []T{}
	}
	return &Paginated[T]{Count: total, Page: page.Normalize().Number, Results: results}
}

func newUserView(u models.User, subscribed bool) UserView {
	return UserView{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func newShortRecipeView(r models.Recipe) ShortRecipeView {
	return ShortRecipeView{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
