package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/repositories"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/config"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/jwt"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/response"
)

// ClaimsKey is the fiber locals key the verified claim set lives under
const ClaimsKey = "claims"

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, response.CodeTokenMissing, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				return response.Unauthorized(c, response.CodeTokenExpired, "Access token expired")
			case errors.Is(err, jwt.ErrTokenMalformed):
				return response.Unauthorized(c, response.CodeTokenInvalid, "Malformed access token")
			default:
				return response.Unauthorized(c, response.CodeTokenInvalid, "Invalid access token")
			}
		}

		// 5. Set claim set in context
		c.Locals(ClaimsKey, claims)

		return c.Next()
	}
}

// GetClaims returns the verified claim set set by AuthMiddleware
func GetClaims(c *fiber.Ctx) (*jwt.Claims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*jwt.Claims)
	return claims, ok
}

// AdminOnly allows only the ADMIN role. The role is never trusted from
// the token alone for the admin plane: the identity is re-fetched and
// its persisted role and active flag are re-checked on every request.
func AdminOnly(userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetClaims(c)
		if !ok {
			return response.Unauthorized(c, response.CodeTokenMissing, "Unauthorized")
		}

		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return response.Forbidden(c, response.CodeForbidden, "You don't have permission to access this resource")
		}
		if !user.IsActive || !user.IsAdmin() {
			return response.Forbidden(c, response.CodeForbidden, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}
