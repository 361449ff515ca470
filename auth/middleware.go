package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JalilAbdallah/hrm-backend/models"
)

// claimsKey is the fiber locals key the middleware stores claims under.
const claimsKey = "auth_claims"

// RequireAuth validates the bearer token and stashes the claims for
// downstream handlers.
func (s *Service) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return unauthorized(c, "missing Authorization header")
		}
		claims, err := s.Verify(header)
		if err != nil {
			return unauthorized(c, err.Error())
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRole gates a route to one role; it implies RequireAuth.
func (s *Service) RequireRole(role string) fiber.Handler {
	return s.RequireAnyRole(role)
}

// RequireAnyRole gates a route to any of the given roles.
func (s *Service) RequireAnyRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return unauthorized(c, "missing Authorization header")
		}
		claims, err := s.Verify(header)
		if err != nil {
			return unauthorized(c, err.Error())
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Locals(claimsKey, claims)
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResp{
			OK:    false,
			Error: "access denied for role " + claims.Role,
		})
	}
}

// ClaimsFrom returns the verified claims set by the middleware, or nil on
// unauthenticated routes.
func ClaimsFrom(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals(claimsKey).(*Claims)
	return claims
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResp{OK: false, Error: msg})
}
