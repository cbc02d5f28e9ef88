package handlers

import (
	"foodgram/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the read-only tag and ingredient catalogs.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/tags", h.HandleGetTags)
	router.Get("/tags/:id", h.HandleGetTag)
	router.Get("/ingredients", h.HandleGetIngredients)
	router.Get("/ingredients/:id", h.HandleGetIngredient)
}

// HandleGetTags lists every tag.
func (h *CatalogHandler) HandleGetTags(c *fiber.Ctx) error {
	tags, err := h.service.ListTags()
	if err != nil {
		return handleError(c, err, "Could not retrieve tags")
	}
	return c.JSON(tags)
}

// HandleGetTag returns a single tag.
func (h *CatalogHandler) HandleGetTag(c *fiber.Ctx) error {
	tag, err := h.service.GetTag(c.Params("id"))
	if err != nil {
		return handleError(c, err, "Could not retrieve tag")
	}
	return c.JSON(tag)
}

// HandleGetIngredients lists ingredients, optionally filtered by a name prefix.
func (h *CatalogHandler) HandleGetIngredients(c *fiber.Ctx) error {
	ingredients, err := h.service.ListIngredients(c.Query("name"))
	if err != nil {
		return handleError(c, err, "Could not retrieve ingredients")
	}
	return c.JSON(ingredients)
}

// HandleGetIngredient returns a single ingredient.
func (h *CatalogHandler) HandleGetIngredient(c *fiber.Ctx) error {
	ingredient, err := h.service.GetIngredient(c.Params("id"))
	if err != nil {
		return handleError(c, err, "Could not retrieve ingredient")
	}
	return c.JSON(ingredient)
}
