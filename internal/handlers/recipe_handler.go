package handlers

import (
	"fmt"

	"foodgram/internal/middleware"
	"foodgram/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RecipeHandler handles HTTP requests for recipes, favorites and the shopping cart.
type RecipeHandler struct {
	recipes      *services.RecipeService
	interactions *services.InteractionService
	lists        *services.ShoppingListService
	pageSize     int
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipes *services.RecipeService, interactions *services.InteractionService, lists *services.ShoppingListService, pageSize int) *RecipeHandler {
	return &RecipeHandler{
		recipes:      recipes,
		interactions: interactions,
		lists:        lists,
		pageSize:     pageSize,
	}
}

// RegisterRoutes registers the recipe routes with the Fiber app.
func (h *RecipeHandler) RegisterRoutes(router fiber.Router, authRequired, optionalAuth fiber.Handler) {
	recipes := router.Group("/recipes")
	recipes.Get("/", optionalAuth, h.HandleGetRecipes)
	recipes.Post("/", authRequired, h.HandleCreateRecipe)
	// Must precede /:id.
	recipes.Get("/download_shopping_cart", authRequired, h.HandleDownloadShoppingCart)
	recipes.Get("/:id", optionalAuth, h.HandleGetRecipe)
	recipes.Patch("/:id", authRequired, h.HandleUpdateRecipe)
	recipes.Delete("/:id", authRequired, h.HandleDeleteRecipe)
	recipes.Post("/:id/favorite", authRequired, h.HandleAddFavorite)
	recipes.Delete("/:id/favorite", authRequired, h.HandleRemoveFavorite)
	recipes.Post("/:id/shopping_cart", authRequired, h.HandleAddToCart)
	recipes.Delete("/:id/shopping_cart", authRequired, h.HandleRemoveFromCart)
}

// HandleGetRecipes lists recipes, newest first. Supported filters: author,
// tags (repeatable slug), is_favorited and is_in_shopping_cart.
func (h *RecipeHandler) HandleGetRecipes(c *fiber.Ctx) error {
	callerID, _ := middleware.CurrentUserID(c)

	filter := services.RecipeListFilter{
		AuthorID:         c.Query("author"),
		IsFavorited:      c.QueryBool("is_favorited", false),
		IsInShoppingCart: c.QueryBool("is_in_shopping_cart", false),
	}
	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		if len(slug) > 0 {
			filter.TagSlugs = append(filter.TagSlugs, string(slug))
		}
	}

	recipes, err := h.recipes.List(filter, callerID, pageFromQuery(c, h.pageSize))
	if err != nil {
		return handleError(c, err, "Could not retrieve recipes")
	}
	return c.JSON(recipes)
}

// HandleGetRecipe retrieves a single recipe by its ID.
func (h *RecipeHandler) HandleGetRecipe(c *fiber.Ctx) error {
	callerID, _ := middleware.CurrentUserID(c)
	recipe, err := h.recipes.Get(c.Params("id"), callerID)
	if err != nil {
		return handleError(c, err, "Could not retrieve recipe")
	}
	return c.JSON(recipe)
}

// HandleCreateRecipe creates a recipe authored by the caller.
func (h *RecipeHandler) HandleCreateRecipe(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	var in services.RecipeInput
	if err := c.BodyParser(&in); err != nil {
		return badRequestBody(c, err)
	}
	recipe, err := h.recipes.Create(c.UserContext(), userID, in)
	if err != nil {
		return handleError(c, err, "Could not create recipe")
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// HandleUpdateRecipe updates a recipe owned by the caller.
func (h *RecipeHandler) HandleUpdateRecipe(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	var in services.RecipeUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return badRequestBody(c, err)
	}
	recipe, err := h.recipes.Update(c.UserContext(), c.Params("id"), userID, in)
	if err != nil {
		return handleError(c, err, "Could not update recipe")
	}
	return c.JSON(recipe)
}

// HandleDeleteRecipe deletes a recipe owned by the caller.
func (h *RecipeHandler) HandleDeleteRecipe(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.recipes.Delete(c.UserContext(), c.Params("id"), userID); err != nil {
		return handleError(c, err, "Could not delete recipe")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddFavorite marks the recipe as a favorite of the caller.
func (h *RecipeHandler) HandleAddFavorite(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	recipe, err := h.interactions.AddFavorite(userID, c.Params("id"))
	if err != nil {
		return handleError(c, err, "Could not add recipe to favorites")
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// HandleRemoveFavorite unmarks a favorite recipe of the caller.
func (h *RecipeHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.interactions.RemoveFavorite(userID, c.Params("id")); err != nil {
		return handleError(c, err, "Could not remove recipe from favorites")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddToCart puts the recipe into the caller's shopping cart.
func (h *RecipeHandler) HandleAddToCart(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	recipe, err := h.interactions.AddToCart(userID, c.Params("id"))
	if err != nil {
		return handleError(c, err, "Could not add recipe to shopping cart")
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// HandleRemoveFromCart takes the recipe out of the caller's shopping cart.
func (h *RecipeHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.interactions.RemoveFromCart(userID, c.Params("id")); err != nil {
		return handleError(c, err, "Could not remove recipe from shopping cart")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDownloadShoppingCart sends the caller's aggregated shopping list as a text attachment.
func (h *RecipeHandler) HandleDownloadShoppingCart(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	items, err := h.lists.Build(userID)
	if err != nil {
		return handleError(c, err, "Could not build shopping list")
	}
	username := middleware.CurrentUsername(c)
	if username == "" {
		username = userID
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", h.lists.FileName(username)))
	return c.Send(h.lists.Render(items))
}
