package cmd

import (
	"errors"
	"strings"

	"foodgram/internal/database"
	"foodgram/internal/models"
	"foodgram/internal/repositories"
	"foodgram/internal/services"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var defaultTags = []models.Tag{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
}

var defaultIngredients = []models.Ingredient{
	{Name: "Butter", MeasurementUnit: "g"},
	{Name: "Eggs", MeasurementUnit: "pcs"},
	{Name: "Flour", MeasurementUnit: "g"},
	{Name: "Garlic", MeasurementUnit: "clove"},
	{Name: "Milk", MeasurementUnit: "ml"},
	{Name: "Olive oil", MeasurementUnit: "ml"},
	{Name: "Onion", MeasurementUnit: "pcs"},
	{Name: "Rice", MeasurementUnit: "g"},
	{Name: "Salt", MeasurementUnit: "g"},
	{Name: "Sugar", MeasurementUnit: "g"},
	{Name: "Tomato", MeasurementUnit: "pcs"},
	{Name: "Water", MeasurementUnit: "ml"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default recipe tags and ingredients",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, database.ParseLogLevel(cfg.DatabaseLog))
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		catalog := services.NewCatalogService(repositories.NewGORMTagRepository(db), repositories.NewGORMIngredientRepository(db))
		return seedCatalog(catalog)
	},
}

// seedCatalog creates the default tags and ingredients. Entries that already
// exist are skipped, so it can run on every deploy.
func seedCatalog(catalog *services.CatalogService) error {
	for _, tag := range defaultTags {
		tag := tag
		err := catalog.CreateTag(&tag)
		switch {
		case errors.Is(err, services.ErrConflict):
			log.Info().Str("slug", tag.Slug).Msg("Tag already exists")
		case err != nil:
			return err
		default:
			log.Info().Str("slug", tag.Slug).Str("id", tag.ID).Msg("Created tag")
		}
	}

	for _, ingredient := range defaultIngredients {
		ingredient := ingredient
		exists, err := ingredientExists(catalog, ingredient)
		if err != nil {
			return err
		}
		if exists {
			log.Info().Str("name", ingredient.Name).Msg("Ingredient already exists")
			continue
		}
		if err := catalog.CreateIngredient(&ingredient); err != nil {
			return err
		}
		log.Info().Str("name", ingredient.Name).Str("id", ingredient.ID).Msg("Created ingredient")
	}
	return nil
}

// ingredientExists matches on name and unit, the pair a shopping list groups by.
func ingredientExists(catalog *services.CatalogService, ingredient models.Ingredient) (bool, error) {
	found, err := catalog.ListIngredients(ingredient.Name)
	if err != nil {
		return false, err
	}
	for _, existing := range found {
		if strings.EqualFold(existing.Name, ingredient.Name) && existing.MeasurementUnit == ingredient.MeasurementUnit {
			return true, nil
		}
	}
	return false, nil
}
