package middleware

import (
	"context"
	"net/http"
	"strings"

	"kopikasir/domain"
	jsonres "kopikasir/pkg/response"

	"github.com/labstack/echo/v4"
)

// TokenValidator resolves a bearer token to the user it belongs to.
// Rejections cover parse failures, revoked tokens and soft-deleted
// users alike.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (domain.User, error)
}

func AuthMiddleware(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid authorization format", nil,
				))
			}

			tokenString := tokenParts[1]

			user, err := validator.ValidateToken(c.Request().Context(), tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			c.Set("user_id", user.ID)
			c.Set("role", user.Role)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return requireRole(domain.RoleAdmin, "Admin access required")
}

func CashierOnly() echo.MiddlewareFunc {
	return requireRole(domain.RoleCashier, "Cashier access required")
}

func requireRole(role, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleStr, ok := c.Get("role").(string)
			if !ok || !strings.EqualFold(roleStr, role) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", message, nil,
				))
			}

			return next(c)
		}
	}
}
