package handlers

import (
	"log"

	"butik/internal/apperrors"
	"butik/internal/middleware"
	"butik/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for account maintenance and the
// admin-only user listing.
type UserHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The profile
// routes require authentication; the listing additionally requires admin.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authed fiber.Handler, admin []fiber.Handler) {
	userRoutes := router.Group("/users")

	userRoutes.Get("/profile", authed, h.HandleGetProfile)
	userRoutes.Put("/profile", authed, h.HandleUpdateProfile)
	userRoutes.Put("/password", authed, h.HandleChangePassword)

	adminRoutes := userRoutes.Group("", admin...)
	adminRoutes.Get("/", h.HandleListUsers)
}

// HandleGetProfile returns the authenticated account, without the password
// hash.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return apperrors.Respond(c, apperrors.ErrUnauthenticated)
	}

	user, err := h.authService.GetUser(identity.ID)
	if err != nil {
		log.Printf("Error loading profile for user %s: %v", identity.ID, err)
		return apperrors.Respond(c, err)
	}
	return c.JSON(user)
}

// UpdateProfileRequest represents the request body for a profile update.
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
}

// HandleUpdateProfile changes username and email of the authenticated
// account.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return apperrors.Respond(c, apperrors.ErrUnauthenticated)
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user, err := h.authService.UpdateProfile(identity.ID, req.Username, req.Email)
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", identity.ID, err)
		return apperrors.Respond(c, err)
	}
	return c.JSON(user)
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// HandleChangePassword replaces the password of the authenticated account
// after verifying the current one.
func (h *UserHandler) HandleChangePassword(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return apperrors.Respond(c, apperrors.ErrUnauthenticated)
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing password change body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.authService.ChangePassword(identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		log.Printf("Error changing password for user %s: %v", identity.ID, err)
		return apperrors.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Password updated successfully",
	})
}

// HandleListUsers returns every account. Reached only through the admin
// chain.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return apperrors.Respond(c, err)
	}
	return c.JSON(users)
}
