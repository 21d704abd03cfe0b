package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ack-hub/internal/domain"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Identity *domain.Identity
	Claims   *Claims
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	resolver *Resolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, resolver *Resolver) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, resolver: resolver}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	// Directory tables may change between deployments, so the role in the
	// token is never trusted on its own.
	identity, err := m.resolver.Resolve(claims.Email)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return apperrors.NewUnauthorized("unknown user")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Identity: identity, Claims: claims})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// IdentityFromContext returns the resolved identity of the caller, or nil.
func IdentityFromContext(c *fiber.Ctx) *domain.Identity {
	principal, ok := PrincipalFromContext(c)
	if !ok || principal == nil {
		return nil
	}
	return principal.Identity
}
