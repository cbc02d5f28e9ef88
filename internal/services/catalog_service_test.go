package services_test

import (
	"testing"

	"foodgram/internal/models"
	"foodgram/internal/repositories"
	"foodgram/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_Ingredients(t *testing.T) {
	f := newFixture(t)
	cached, err := repositories.NewCachedIngredientRepository(f.ingredients, 16)
	require.NoError(t, err)
	catalog := services.NewCatalogService(f.tags, cached)

	for _, ing := range []models.Ingredient{
		{Name: "Milk", MeasurementUnit: "ml"},
		{Name: "milk chocolate", MeasurementUnit: "g"},
		{Name: "Flour", MeasurementUnit: "g"},
		{Name: "100% juice", MeasurementUnit: "ml"},
	} {
		ing := ing
		require.NoError(t, catalog.CreateIngredient(&ing))
	}

	all, err := catalog.ListIngredients("")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	found, err := catalog.ListIngredients("MIL")
	require.NoError(t, err)
	names := []string{}
	for _, ing := range found {
		names = append(names, ing.Name)
	}
	assert.ElementsMatch(t, []string{"Milk", "milk chocolate"}, names)

	// LIKE wildcards in the prefix are matched literally.
	found, err = catalog.ListIngredients("100%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100% juice", found[0].Name)
	found, err = catalog.ListIngredients("%")
	require.NoError(t, err)
	assert.Empty(t, found)

	got, err := catalog.GetIngredient(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].Name, got.Name)
	assert.Equal(t, 1, cached.Len())

	_, err = catalog.GetIngredient("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = catalog.CreateIngredient(&models.Ingredient{Name: "Salt"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "measurement_unit", verr.Field)
}

func TestCatalogService_Tags(t *testing.T) {
	f := newFixture(t)
	catalog := services.NewCatalogService(f.tags, f.ingredients)

	tag := &models.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}
	require.NoError(t, catalog.CreateTag(tag))
	assert.NotEmpty(t, tag.ID)

	err := catalog.CreateTag(&models.Tag{Name: "Morning", Color: "#000000", Slug: "breakfast"})
	assert.ErrorIs(t, err, services.ErrConflict)

	err = catalog.CreateTag(&models.Tag{Name: "Bad", Color: "#000000", Slug: "no spaces"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "slug", verr.Field)

	err = catalog.CreateTag(&models.Tag{Name: "Bad", Color: "red", Slug: "bad"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "color", verr.Field)

	tags, err := catalog.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 1)

	got, err := catalog.GetTag(tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "breakfast", got.Slug)

	_, err = catalog.GetTag("missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
