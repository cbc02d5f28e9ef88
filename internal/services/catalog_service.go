package services

import (
	"strings"

	"foodgram/internal/models"
	"foodgram/internal/repositories"
	"foodgram/internal/validation"
)

// CatalogService exposes the tag and ingredient reference data. Recipes only
// ever read it; the Create methods exist for seeding.
type CatalogService struct {
	tags        repositories.TagRepository
	ingredients repositories.IngredientRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(tags repositories.TagRepository, ingredients repositories.IngredientRepository) *CatalogService {
	return &CatalogService{
		tags:        tags,
		ingredients: ingredients,
	}
}

// ListTags returns every tag.
func (s *CatalogService) ListTags() ([]models.Tag, error) {
	tags, err := s.tags.GetAll()
	return tags, translate(err, "failed to list tags")
}

// GetTag returns a single tag.
func (s *CatalogService) GetTag(id string) (*models.Tag, error) {
	tag, err := s.tags.GetByID(id)
	return tag, translate(err, "tag %s", id)
}

// ListIngredients returns all ingredients, or those whose name starts with
// namePrefix when it is not blank.
func (s *CatalogService) ListIngredients(namePrefix string) ([]models.Ingredient, error) {
	if prefix := strings.TrimSpace(namePrefix); prefix != "" {
		ingredients, err := s.ingredients.SearchByPrefix(prefix)
		return ingredients, translate(err, "failed to search ingredients")
	}
	ingredients, err := s.ingredients.GetAll()
	return ingredients, translate(err, "failed to list ingredients")
}

// GetIngredient returns a single ingredient.
func (s *CatalogService) GetIngredient(id string) (*models.Ingredient, error) {
	ingredient, err := s.ingredients.GetByID(id)
	return ingredient, translate(err, "ingredient %s", id)
}

// CreateTag validates and stores a new tag. A taken slug fails with ErrConflict.
func (s *CatalogService) CreateTag(tag *models.Tag) error {
	if fe := validation.Struct(tag); fe != nil {
		return newValidationError(fe.Field, "%s", fe.Message)
	}
	return translate(s.tags.Create(tag), "tag with slug %s", tag.Slug)
}

// CreateIngredient stores a new ingredient.
func (s *CatalogService) CreateIngredient(ingredient *models.Ingredient) error {
	if strings.TrimSpace(ingredient.Name) == "" {
		return newValidationError("name", "This field is required.")
	}
	if strings.TrimSpace(ingredient.MeasurementUnit) == "" {
		return newValidationError("measurement_unit", "This field is required.")
	}
	return translate(s.ingredients.Create(ingredient), "failed to create ingredient %s", ingredient.Name)
}
