package handlers

import (
	"foodgram/internal/middleware"
	"foodgram/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Services bundles the services the HTTP surface depends on.
type Services struct {
	Auth          *services.AuthService
	Users         *services.UserService
	Follows       *services.FollowService
	Catalog       *services.CatalogService
	Recipes       *services.RecipeService
	Interactions  *services.InteractionService
	ShoppingLists *services.ShoppingListService
}

// RegisterRoutes mounts every API route on router. pageSize is the default
// page size of paginated listings.
func RegisterRoutes(router fiber.Router, svc Services, pageSize int) {
	authRequired := middleware.AuthRequired(svc.Auth)
	optionalAuth := middleware.OptionalAuth(svc.Auth)

	NewAuthHandler(svc.Auth, svc.Users, svc.Follows, pageSize).RegisterRoutes(router, authRequired, optionalAuth)
	NewCatalogHandler(svc.Catalog).RegisterRoutes(router)
	NewRecipeHandler(svc.Recipes, svc.Interactions, svc.ShoppingLists, pageSize).RegisterRoutes(router, authRequired, optionalAuth)
}
