package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/apperrors"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/service"
)

// AuthHandler exposes registration, login, logout and the current-user
// probe.
type AuthHandler struct {
	service *service.AuthService
	cookies *auth.CookieAdapter
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, cookies *auth.CookieAdapter) *AuthHandler {
	return &AuthHandler{service: authService, cookies: cookies}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("All fields are required")
	}

	// BodyParser values alias fiber's reusable request buffer; copy
	// anything that outlives the request.
	_, token, err := h.service.Register(c.UserContext(),
		utils.CopyString(req.Name),
		utils.CopyString(req.Email),
		utils.CopyString(req.Password),
	)
	if err != nil {
		return err
	}

	h.cookies.Set(c, token)
	return c.Status(http.StatusCreated).JSON(dto.ActionResult{
		Success: true,
		Message: "Registration successful",
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("Email and password are required")
	}

	_, token, err := h.service.Login(c.UserContext(),
		utils.CopyString(req.Email),
		utils.CopyString(req.Password),
	)
	if err != nil {
		return err
	}

	h.cookies.Set(c, token)
	return c.JSON(dto.ActionResult{Success: true, Message: "Login successful"})
}

// Logout handles POST /auth/logout. The cookie is cleared
// unconditionally, session or not.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID := ""
	if user, ok := auth.UserFromContext(c); ok {
		userID = user.ID
	}

	h.cookies.Clear(c)
	h.service.Logout(c.UserContext(), userID)
	return c.JSON(dto.ActionResult{Success: true, Message: "Logout successful"})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired("Not authenticated")
	}
	return c.JSON(fiber.Map{"success": true, "data": user.Profile()})
}
