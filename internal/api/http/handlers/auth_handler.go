package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ack-hub/internal/api/dto"
	"github.com/spec-kit/ack-hub/internal/auth"
	"github.com/spec-kit/ack-hub/internal/domain"
	"github.com/spec-kit/ack-hub/internal/service"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

// AuthHandler exposes email sign-in and the demo user switcher.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Users handles GET /auth/users.
func (h *AuthHandler) Users(c *fiber.Ctx) error {
	users := h.auth.QuickUsers()
	resp := make([]dto.IdentityResponse, 0, len(users))
	for i := range users {
		resp = append(resp, identityResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email, err := parseEmail(c)
	if err != nil {
		return err
	}
	session, err := h.auth.Login(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(session)})
}

// Switch handles POST /auth/switch.
func (h *AuthHandler) Switch(c *fiber.Ctx) error {
	email, err := parseEmail(c)
	if err != nil {
		return err
	}
	session, err := h.auth.Switch(c.UserContext(), auth.IdentityFromContext(c), email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(session)})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity := auth.IdentityFromContext(c)
	if identity == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": identityResponse(identity)})
}

func parseEmail(c *fiber.Ctx) (string, error) {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return "", apperrors.NewValidationError("invalid payload", nil)
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return "", apperrors.NewValidationError("email required", map[string]any{"email": "required"})
	}
	return email, nil
}

func sessionResponse(session *service.Session) fiber.Map {
	return fiber.Map{
		"user": identityResponse(session.Identity),
		"auth": dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
	}
}

func identityResponse(identity *domain.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		Email:           identity.Email,
		DisplayName:     identity.DisplayName,
		Role:            identity.Role,
		Unit:            identity.Unit,
		SupervisorEmail: identity.SupervisorEmail,
	}
}
