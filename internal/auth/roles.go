package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ack-hub/internal/domain"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

// RequireRole ensures the principal has one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity := IdentityFromContext(c)
		if identity == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewPermissionDenied("insufficient role")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal was loaded for the request.
func RequireAuthenticated() fiber.Handler {
	return RequireRole()
}
