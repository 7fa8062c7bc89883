package middleware

import (
	"strings"

	"butik/internal/apperrors"
	"butik/internal/auth"
	"butik/internal/services"

	"github.com/gofiber/fiber/v2"
)

// identityKey is the Locals key under which the authenticated identity is
// stored. Unexported so the only way to read it is IdentityFromCtx.
const identityKey = "identity"

// AuthRequired is a Fiber middleware that authenticates the request. It
// extracts the bearer token, verifies it, resolves it to a live account and
// attaches the resulting Identity to the request context. The response for
// every failure is the same generic 401.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperrors.Respond(c, apperrors.ErrUnauthenticated)
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return apperrors.Respond(c, apperrors.ErrUnauthenticated)
		}

		identity, err := authService.Authenticate(parts[1])
		if err != nil {
			return apperrors.Respond(c, apperrors.ErrUnauthenticated)
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// AdminRequired returns the full chain for admin-only routes: the
// authentication stage followed by the admin check. The admin stage is
// unexported, so it cannot be composed without the authentication stage
// having run first.
func AdminRequired(authService *services.AuthService) []fiber.Handler {
	return []fiber.Handler{AuthRequired(authService), requireAdmin}
}

func requireAdmin(c *fiber.Ctx) error {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return apperrors.Respond(c, apperrors.ErrUnauthenticated)
	}
	if !identity.IsAdmin {
		return apperrors.Respond(c, apperrors.ErrForbidden)
	}
	return c.Next()
}

// IdentityFromCtx returns the identity attached by AuthRequired.
func IdentityFromCtx(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals(identityKey).(auth.Identity)
	return identity, ok
}
