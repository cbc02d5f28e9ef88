package repositories_test

import (
	"testing"

	"foodgram/internal/models"
	"foodgram/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMShoppingListRepository_AggregatePostgres(t *testing.T) {
	db, mock := newMockPostgres(t)

	query := `SELECT ingredients\.name AS name, .+SUM\(recipe_ingredients\.amount\) AS amount FROM "recipe_ingredients" ` +
		`JOIN ingredients ON .+ JOIN shopping_carts ON .+ WHERE shopping_carts\.user_id = \$1 ` +
		`GROUP BY ingredients\.name, ingredients\.measurement_unit ORDER BY ingredients\.name, ingredients\.measurement_unit`
	mock.ExpectQuery(query).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"name", "measurement_unit", "amount"}).
			AddRow("Flour", "g", 500).
			AddRow("Milk", "ml", 100))

	items, err := repositories.NewGORMShoppingListRepository(db).Aggregate("user-1")
	require.NoError(t, err)
	assert.Equal(t, []models.ShoppingListItem{
		{Name: "Flour", MeasurementUnit: "g", Amount: 500},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 100},
	}, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGORMShoppingListRepository_AggregateSQLite(t *testing.T) {
	db := newTestDB(t)
	s := seedCatalog(t, db)
	recipes := repositories.NewGORMRecipeRepository(db)
	interactions := repositories.NewGORMInteractionRepository(db)

	a := &models.Recipe{AuthorID: s.author.ID, Name: "A", Image: "img", Text: "t", CookingTime: 1}
	require.NoError(t, recipes.Create(a, []string{s.tag.ID}, []models.IngredientAmount{{IngredientID: s.flour.ID, Amount: 200}}))
	b := &models.Recipe{AuthorID: s.author.ID, Name: "B", Image: "img", Text: "t", CookingTime: 1}
	require.NoError(t, recipes.Create(b, []string{s.tag.ID}, []models.IngredientAmount{
		{IngredientID: s.flour.ID, Amount: 300},
		{IngredientID: s.milk.ID, Amount: 100},
	}))
	require.NoError(t, interactions.Add(repositories.KindShoppingCart, s.author.ID, a.ID))
	require.NoError(t, interactions.Add(repositories.KindShoppingCart, s.author.ID, b.ID))

	lists := repositories.NewGORMShoppingListRepository(db)
	items, err := lists.Aggregate(s.author.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.ShoppingListItem{
		{Name: "Flour", MeasurementUnit: "g", Amount: 500},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 100},
	}, items)

	empty, err := lists.Aggregate("someone-else")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
