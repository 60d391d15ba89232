package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront-api/internal/models"
	"storefront-api/internal/services"
)

type AuthMiddleware struct {
	authService *services.AuthService
}

func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAdmin admits only tokens signed for the admin audience.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return m.require(models.UserTypeAdmin)
}

// RequireCustomer admits only tokens signed for the customer audience.
func (m *AuthMiddleware) RequireCustomer() fiber.Handler {
	return m.require(models.UserTypeCustomer)
}

// RequireAny admits a token from either audience; handlers check the
// resolved user type for finer authorization.
func (m *AuthMiddleware) RequireAny() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, "missing or malformed authorization header")
		}

		if userID, err := m.authService.ValidateToken(token, models.UserTypeAdmin); err == nil {
			c.Locals("userID", userID)
			c.Locals("userType", models.UserTypeAdmin)
			return c.Next()
		}
		if userID, err := m.authService.ValidateToken(token, models.UserTypeCustomer); err == nil {
			c.Locals("userID", userID)
			c.Locals("userType", models.UserTypeCustomer)
			return c.Next()
		}

		return ErrorResponse(c, fiber.StatusUnauthorized, "invalid or expired token")
	}
}

func (m *AuthMiddleware) require(userType models.UserType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, "missing or malformed authorization header")
		}

		userID, err := m.authService.ValidateToken(token, userType)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals("userID", userID)
		c.Locals("userType", userType)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return ""
	}
	return userID
}

func GetUserType(c *fiber.Ctx) models.UserType {
	userType, ok := c.Locals("userType").(models.UserType)
	if !ok {
		return ""
	}
	return userType
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetUserType(c) == models.UserTypeAdmin
}
