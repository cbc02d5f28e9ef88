package services

import (
	"context"
	"errors"
	"fmt"

	"foodgram/internal/metrics"
	"foodgram/internal/models"
	"foodgram/internal/repositories"
	"foodgram/internal/storage"
	"foodgram/internal/validation"

	"github.com/rs/zerolog/log"
)

// IngredientAmountInput is one ingredient line of a recipe write.
type IngredientAmountInput struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

// RecipeInput is the write contract for creating a recipe.
type RecipeInput struct {
	Tags        []string                `json:"tags"`
	Ingredients []IngredientAmountInput `json:"ingredients"`
	Name        string                  `json:"name" validate:"required,max=200"`
	Image       string                  `json:"image" validate:"required"`
	Text        string                  `json:"text" validate:"required"`
	CookingTime int                     `json:"cooking_time" validate:"gte=1"`
}

// RecipeUpdateInput is the write contract for updating a recipe. Nil scalar
// fields keep their current value; tags and ingredients are always replaced.
type RecipeUpdateInput struct {
	Tags        []string                `json:"tags"`
	Ingredients []IngredientAmountInput `json:"ingredients"`
	Name        *string                 `json:"name"`
	Image       *string                 `json:"image"`
	Text        *string                 `json:"text"`
	CookingTime *int                    `json:"cooking_time"`
}

// RecipeListFilter narrows a recipe listing. The favorite and cart flags only
// apply to an authenticated caller.
type RecipeListFilter struct {
	AuthorID         string
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
}

// RecipeService owns validated writes of the recipe aggregate and its read projection.
type RecipeService struct {
	recipes      repositories.RecipeRepository
	tags         repositories.TagRepository
	ingredients  repositories.IngredientRepository
	interactions repositories.InteractionRepository
	follows      repositories.FollowRepository
	images       storage.ImageStore
	events       EventPublisher
}

// NewRecipeService creates a new RecipeService. events may be nil.
func NewRecipeService(
	recipes repositories.RecipeRepository,
	tags repositories.TagRepository,
	ingredients repositories.IngredientRepository,
	interactions repositories.InteractionRepository,
	follows repositories.FollowRepository,
	images storage.ImageStore,
	events EventPublisher,
) *RecipeService {
	return &RecipeService{
		recipes:      recipes,
		tags:         tags,
		ingredients:  ingredients,
		interactions: interactions,
		follows:      follows,
		images:       images,
		events:       events,
	}
}

// Create validates in and stores a new recipe authored by authorID.
func (s *RecipeService) Create(ctx context.Context, authorID string, in RecipeInput) (*RecipeView, error) {
	lines, err := s.validate(in)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(in.Image)
	if err != nil {
		return nil, err
	}
	ref, err := s.images.Save(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("failed to store recipe image: %w", err)
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Image:       ref,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}
	if err := s.recipes.Create(recipe, in.Tags, lines); err != nil {
		s.discardImage(ctx, img, ref)
		return nil, translate(err, "failed to create recipe")
	}

	metrics.RecipeMutations.WithLabelValues("create").Inc()
	publishEvent(s.events, Event{Type: "recipe.created", RecipeID: recipe.ID, AuthorID: authorID})
	log.Info().Str("recipe_id", recipe.ID).Str("author_id", authorID).Msg("Recipe created")

	return s.Get(recipe.ID, authorID)
}

// Update replaces the tag and ingredient sets of a recipe and updates the
// given fields. Only the author may update a recipe.
func (s *RecipeService) Update(ctx context.Context, recipeID, actorID string, in RecipeUpdateInput) (*RecipeView, error) {
	recipe, err := s.recipes.GetByID(recipeID)
	if err != nil {
		return nil, translate(err, "recipe %s", recipeID)
	}
	if recipe.AuthorID != actorID {
		return nil, fmt.Errorf("%w: only the author can edit recipe %s", ErrPermissionDenied, recipeID)
	}

	merged := RecipeInput{
		Tags:        in.Tags,
		Ingredients: in.Ingredients,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
	}
	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Image != nil {
		merged.Image = *in.Image
	}
	if in.Text != nil {
		merged.Text = *in.Text
	}
	if in.CookingTime != nil {
		merged.CookingTime = *in.CookingTime
	}
	lines, err := s.validate(merged)
	if err != nil {
		return nil, err
	}

	oldImage := recipe.Image
	var img storage.Image
	if in.Image != nil {
		if img, err = decodeImage(*in.Image); err != nil {
			return nil, err
		}
		if recipe.Image, err = s.images.Save(ctx, img); err != nil {
			return nil, fmt.Errorf("failed to store recipe image: %w", err)
		}
	}
	recipe.Name = merged.Name
	recipe.Text = merged.Text
	recipe.CookingTime = merged.CookingTime

	if err := s.recipes.Update(recipe, merged.Tags, lines); err != nil {
		if in.Image != nil {
			s.discardImage(ctx, img, recipe.Image)
		}
		return nil, translate(err, "failed to update recipe %s", recipeID)
	}
	if recipe.Image != oldImage {
		s.discardImage(ctx, storage.Image{}, oldImage)
	}

	metrics.RecipeMutations.WithLabelValues("update").Inc()
	publishEvent(s.events, Event{Type: "recipe.updated", RecipeID: recipeID, AuthorID: actorID})

	return s.Get(recipeID, actorID)
}

// Delete removes a recipe with its lines, tags, favorites and cart entries.
// Only the author may delete a recipe.
func (s *RecipeService) Delete(ctx context.Context, recipeID, actorID string) error {
	recipe, err := s.recipes.GetByID(recipeID)
	if err != nil {
		return translate(err, "recipe %s", recipeID)
	}
	if recipe.AuthorID != actorID {
		return fmt.Errorf("%w: only the author can delete recipe %s", ErrPermissionDenied, recipeID)
	}
	if err := s.recipes.Delete(recipeID); err != nil {
		return translate(err, "failed to delete recipe %s", recipeID)
	}
	s.discardImage(ctx, storage.Image{}, recipe.Image)

	metrics.RecipeMutations.WithLabelValues("delete").Inc()
	publishEvent(s.events, Event{Type: "recipe.deleted", RecipeID: recipeID, AuthorID: actorID})
	return nil
}

// Get returns the read projection of a recipe for callerID ("" when anonymous).
func (s *RecipeService) Get(recipeID, callerID string) (*RecipeView, error) {
	recipe, err := s.recipes.GetByID(recipeID)
	if err != nil {
		return nil, translate(err, "recipe %s", recipeID)
	}
	views, err := s.project([]models.Recipe{*recipe}, callerID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns one page of recipes, newest first.
func (s *RecipeService) List(filter RecipeListFilter, callerID string, page repositories.Page) (*Paginated[RecipeView], error) {
	repoFilter := repositories.RecipeFilter{
		AuthorID: filter.AuthorID,
		TagSlugs: filter.TagSlugs,
	}
	if callerID != "" {
		if filter.IsFavorited {
			repoFilter.FavoritedBy = callerID
		}
		if filter.IsInShoppingCart {
			repoFilter.InCartOf = callerID
		}
	}
	recipes, total, err := s.recipes.List(repoFilter, page)
	if err != nil {
		return nil, translate(err, "failed to list recipes")
	}
	views, err := s.project(recipes, callerID)
	if err != nil {
		return nil, err
	}
	return newPaginated(views, total, page), nil
}

// validate checks the write contract and returns the ingredient lines to store.
// The first failing rule is reported.
func (s *RecipeService) validate(in RecipeInput) ([]models.IngredientAmount, error) {
	err := s.checkInput(in)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			metrics.RecipeValidationFailures.WithLabelValues(verr.Field).Inc()
		}
		return nil, err
	}
	lines := make([]models.IngredientAmount, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		lines = append(lines, models.IngredientAmount{IngredientID: line.ID, Amount: line.Amount})
	}
	return lines, nil
}

func (s *RecipeService) checkInput(in RecipeInput) error {
	if fe := validation.Struct(in); fe != nil {
		return newValidationError(fe.Field, "%s", fe.Message)
	}

	if len(in.Tags) == 0 {
		return newValidationError("tags", "This field is required.")
	}
	seenTags := make(map[string]struct{}, len(in.Tags))
	for _, id := range in.Tags {
		if _, dup := seenTags[id]; dup {
			return newValidationError("tags", "Tags must be unique.")
		}
		seenTags[id] = struct{}{}
	}
	known, err := s.tags.GetByIDs(in.Tags)
	if err != nil {
		return translate(err, "failed to resolve tags")
	}
	if len(known) != len(in.Tags) {
		found := make(map[string]struct{}, len(known))
		for _, tag := range known {
			found[tag.ID] = struct{}{}
		}
		for _, id := range in.Tags {
			if _, ok := found[id]; !ok {
				return newValidationError("tags", "Tag with id %s does not exist.", id)
			}
		}
	}

	if len(in.Ingredients) == 0 {
		return newValidationError("ingredients", "This field is required.")
	}
	seenIngredients := make(map[string]struct{}, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if _, err := s.ingredients.GetByID(line.ID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return newValidationError("ingredients", "Ingredient with id %s does not exist.", line.ID)
			}
			return translate(err, "failed to resolve ingredient %s", line.ID)
		}
		if _, dup := seenIngredients[line.ID]; dup {
			return newValidationError("ingredients", "Ingredients must not repeat.")
		}
		seenIngredients[line.ID] = struct{}{}
		if line.Amount < 1 {
			return newValidationError("amount", "Ensure this value is greater than or equal to 1.")
		}
	}
	return nil
}

// project builds read projections for recipes relative to callerID.
func (s *RecipeService) project(recipes []models.Recipe, callerID string) ([]RecipeView, error) {
	ids := make([]string, 0, len(recipes))
	authorIDs := make([]string, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	favorited, err := s.interactions.Members(repositories.KindFavorite, callerID, ids)
	if err != nil {
		return nil, translate(err, "failed to load favorites")
	}
	inCart, err := s.interactions.Members(repositories.KindShoppingCart, callerID, ids)
	if err != nil {
		return nil, translate(err, "failed to load shopping cart")
	}
	followed, err := s.follows.Followed(callerID, authorIDs)
	if err != nil {
		return nil, translate(err, "failed to load subscriptions")
	}

	views := make([]RecipeView, 0, len(recipes))
	for _, r := range recipes {
		lines := make([]IngredientLineView, 0, len(r.Ingredients))
		for _, line := range r.Ingredients {
			lines = append(lines, IngredientLineView{
				ID:              line.IngredientID,
				Name:            line.Ingredient.Name,
				MeasurementUnit: line.Ingredient.MeasurementUnit,
				Amount:          line.Amount,
			})
		}
		tags := r.Tags
		if tags == nil {
			tags = []models.Tag{}
		}
		views = append(views, RecipeView{
			ID:               r.ID,
			Tags:             tags,
			Author:           newUserView(r.Author, followed[r.AuthorID] && r.AuthorID != callerID),
			Ingredients:      lines,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		})
	}
	return views, nil
}

func decodeImage(value string) (storage.Image, error) {
	img, err := storage.DecodeImage(value)
	if err != nil {
		metrics.RecipeValidationFailures.WithLabelValues("image").Inc()
		return storage.Image{}, newValidationError("image", "Upload a valid image. %v", err)
	}
	return img, nil
}

// discardImage removes a stored image that is no longer referenced. Passed
// through references are never deleted.
func (s *RecipeService) discardImage(ctx context.Context, img storage.Image, ref string) {
	if ref == "" || ref == img.Ref {
		return
	}
	if err := s.images.Delete(ctx, ref); err != nil {
		log.Warn().Err(err).Str("image", ref).Msg("Failed to delete recipe image")
	}
}
