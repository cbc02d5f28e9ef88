package handlers

import (
	"foodgram/internal/middleware"
	"foodgram/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and user accounts.
type AuthHandler struct {
	authService   *services.AuthService
	userService   *services.UserService
	followService *services.FollowService
	pageSize      int
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, followService *services.FollowService, pageSize int) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		userService:   userService,
		followService: followService,
		pageSize:      pageSize,
	}
}

// RegisterRoutes registers the authentication and user routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired, optionalAuth fiber.Handler) {
	router.Post("/auth/token/login", h.HandleLogin)

	users := router.Group("/users")
	users.Get("/", optionalAuth, h.HandleListUsers)
	users.Post("/", h.HandleRegister)
	users.Get("/me", authRequired, h.HandleMe)
	users.Post("/set_password", authRequired, h.HandleSetPassword)
	users.Get("/subscriptions", authRequired, h.HandleSubscriptions)
	users.Get("/:id", optionalAuth, h.HandleGetUser)
	users.Post("/:id/subscribe", authRequired, h.HandleSubscribe)
	users.Delete("/:id/subscribe", authRequired, h.HandleUnsubscribe)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return badRequestBody(c, err)
	}
	user, err := h.authService.Register(in)
	if err != nil {
		return handleError(c, err, "Registration failed")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return badRequestBody(c, err)
	}
	token, err := h.authService.Login(in.Email, in.Password)
	if err != nil {
		return handleError(c, err, "Authentication failed")
	}
	return c.JSON(fiber.Map{
		"auth_token": token,
	})
}

// HandleSetPassword replaces the password of the caller.
func (h *AuthHandler) HandleSetPassword(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	var in services.ChangePasswordInput
	if err := c.BodyParser(&in); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.authService.ChangePassword(userID, in); err != nil {
		return handleError(c, err, "Could not change password")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListUsers returns one page of users.
func (h *AuthHandler) HandleListUsers(c *fiber.Ctx) error {
	callerID, _ := middleware.CurrentUserID(c)
	users, err := h.userService.List(callerID, pageFromQuery(c, h.pageSize))
	if err != nil {
		return handleError(c, err, "Could not retrieve users")
	}
	return c.JSON(users)
}

// HandleGetUser returns a single user profile.
func (h *AuthHandler) HandleGetUser(c *fiber.Ctx) error {
	callerID, _ := middleware.CurrentUserID(c)
	user, err := h.userService.Get(c.Params("id"), callerID)
	if err != nil {
		return handleError(c, err, "Could not retrieve user")
	}
	return c.JSON(user)
}

// HandleMe returns the profile of the caller.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	user, err := h.userService.Me(userID)
	if err != nil {
		return handleError(c, err, "Could not retrieve user")
	}
	return c.JSON(user)
}

// HandleSubscriptions lists the authors the caller follows.
func (h *AuthHandler) HandleSubscriptions(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	authors, err := h.followService.ListFollowing(userID, pageFromQuery(c, h.pageSize), c.QueryInt("recipes_limit", 0))
	if err != nil {
		return handleError(c, err, "Could not retrieve subscriptions")
	}
	return c.JSON(authors)
}

// HandleSubscribe makes the caller follow the author in the path.
func (h *AuthHandler) HandleSubscribe(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	author, err := h.followService.Follow(userID, c.Params("id"), c.QueryInt("recipes_limit", 0))
	if err != nil {
		return handleError(c, err, "Could not subscribe")
	}
	return c.Status(fiber.StatusCreated).JSON(author)
}

// HandleUnsubscribe removes the caller's subscription to the author in the path.
func (h *AuthHandler) HandleUnsubscribe(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.followService.Unfollow(userID, c.Params("id")); err != nil {
		return handleError(c, err, "Could not unsubscribe")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
