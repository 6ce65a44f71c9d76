package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/femcoders/pettrack/pkg/util"
)

// RequireAuthenticated is the coarse route-level gate: because identity
// resolution is fail-open, auth-required routes must reject anonymous
// callers explicitly here.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		return c.Next()
	}
}
