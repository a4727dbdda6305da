package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskio-app/taskio/internal/auth"
)

// JWTMiddleware authenticates the request's bearer token and stores the
// principal's identity in the request context for downstream handlers.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := auth.ExtractTokenFromHeader(c.Request().Header.Get("Authorization"))
		if token == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No token provided"})
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		return next(c)
	}
}
