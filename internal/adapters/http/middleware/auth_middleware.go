package middleware

import (
	"errors"
	"strings"

	"investhub/internal/config"
	"investhub/internal/core/domain"
	"investhub/internal/core/services"
	"investhub/internal/pkg/jwt"
	"investhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. The access token is
// read from the cookie first, then the Authorization header.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies("access_token")

		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// AdminGate wraps the admin surface. Every request passes through the
// authorization gate, which answers from its admitted cache or re-checks
// the role in the users table. Anything but an authorized resolution is a
// 403 carrying the gate's reason.
func AdminGate(gate *services.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(string)
		if !ok || userID == "" {
			return response.Unauthorized(c, "Unauthorized")
		}

		result := gate.Authorize(c.Context(), userID)
		if result.State != domain.AuthAuthorized {
			reason := result.Reason
			if reason == "" {
				reason = "access denied"
			}
			return response.Forbidden(c, reason)
		}

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware from the
// token claims alone, without touching the users table
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}
