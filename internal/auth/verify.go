package auth

import (
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskio-app/taskio/internal/db"
	"github.com/taskio-app/taskio/internal/user"
)

// ===== Verify =====
// GET /auth/verify returns the account behind a bearer token, mainly used by
// clients to restore a session on load.
func Verify(c echo.Context) error {
	token := ExtractTokenFromHeader(c.Request().Header.Get("Authorization"))
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No token provided"})
	}

	claims, err := VerifyToken(token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
	}

	var (
		u              user.User
		profilePicture *string
		headerImage    *string
	)
	err = db.Conn.QueryRow(c.Request().Context(), `
        SELECT id, name, email, role, profile_picture, header_image, created_at
        FROM users WHERE id = $1
    `, claims.UserID).Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &profilePicture, &headerImage, &u.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	if profilePicture != nil {
		u.ProfilePicture = *profilePicture
	}
	if headerImage != nil {
		u.HeaderImage = *headerImage
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Token verified successfully",
		"user":    u,
	})
}
