package cmd

import (
	"testing"

	"foodgram/internal/database"
	"foodgram/internal/repositories"
	"foodgram/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestSeedCatalogIsIdempotent(t *testing.T) {
	db, err := database.Open("sqlite", "file:"+uuid.New().String()+"?mode=memory&cache=shared", logger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	catalog := services.NewCatalogService(repositories.NewGORMTagRepository(db), repositories.NewGORMIngredientRepository(db))
	require.NoError(t, seedCatalog(catalog))
	require.NoError(t, seedCatalog(catalog))

	tags, err := catalog.ListTags()
	require.NoError(t, err)
	assert.Len(t, tags, len(defaultTags))

	ingredients, err := catalog.ListIngredients("")
	require.NoError(t, err)
	assert.Len(t, ingredients, len(defaultIngredients))

	flour, err := catalog.ListIngredients("flo")
	require.NoError(t, err)
	require.Len(t, flour, 1)
	assert.Equal(t, "g", flour[0].MeasurementUnit)
}
