package services_test

import (
	"testing"

	"foodgram/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractionService_Toggles(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "chef")
	fan := f.user(t, "fan")
	tag := f.tag(t, "breakfast")
	a := f.ingredient(t, "Apple", "pcs")
	recipe := f.recipe(t, author, "Pie", []string{tag.ID}, line(a.ID, 5))

	sets := []struct {
		name   string
		add    func(userID, recipeID string) (*services.ShortRecipeView, error)
		remove func(userID, recipeID string) error
	}{
		{"favorite", f.interactions.AddFavorite, f.interactions.RemoveFavorite},
		{"shopping cart", f.interactions.AddToCart, f.interactions.RemoveFromCart},
	}
	for _, set := range sets {
		t.Run(set.name, func(t *testing.T) {
			short, err := set.add(fan.ID, recipe.ID)
			require.NoError(t, err)
			assert.Equal(t, recipe.ID, short.ID)
			assert.Equal(t, "Pie", short.Name)
			assert.Equal(t, recipe.Image, short.Image)
			assert.Equal(t, 10, short.CookingTime)

			_, err = set.add(fan.ID, recipe.ID)
			assert.ErrorIs(t, err, services.ErrConflict)

			require.NoError(t, set.remove(fan.ID, recipe.ID))
			err = set.remove(fan.ID, recipe.ID)
			assert.ErrorIs(t, err, services.ErrNotFound)

			_, err = set.add(fan.ID, "missing")
			assert.ErrorIs(t, err, services.ErrNotFound)
			err = set.remove(fan.ID, "missing")
			assert.ErrorIs(t, err, services.ErrNotFound)
		})
	}

	assert.Contains(t, f.events.keys, "favorite.added")
	assert.Contains(t, f.events.keys, "shopping_cart.removed")
}

func TestInteractionService_SetsAreIndependent(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "chef")
	tag := f.tag(t, "breakfast")
	a := f.ingredient(t, "Apple", "pcs")
	recipe := f.recipe(t, author, "Pie", []string{tag.ID}, line(a.ID, 5))

	_, err := f.interactions.AddFavorite(author.ID, recipe.ID)
	require.NoError(t, err)
	_, err = f.interactions.AddToCart(author.ID, recipe.ID)
	assert.NoError(t, err)

	err = f.interactions.RemoveFromCart(author.ID, recipe.ID)
	require.NoError(t, err)
	got, err := f.recipes.Get(recipe.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorited)
	assert.False(t, got.IsInShoppingCart)
}
