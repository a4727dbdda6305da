package auth

import (
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskio-app/taskio/internal/db"
	"github.com/taskio-app/taskio/internal/user"
)

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ===== Signin =====
// POST /auth/signin
func Signin(c echo.Context) error {
	req := new(SigninRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}

	var (
		u              user.User
		profilePicture *string
		headerImage    *string
	)
	err := db.Conn.QueryRow(c.Request().Context(), `
        SELECT id, name, email, password, role, profile_picture, header_image, created_at
        FROM users WHERE email = $1
    `, strings.ToLower(strings.TrimSpace(req.Email))).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &profilePicture, &headerImage, &u.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	if profilePicture != nil {
		u.ProfilePicture = *profilePicture
	}
	if headerImage != nil {
		u.HeaderImage = *headerImage
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	}

	token, err := IssueToken(u.ID, u.Email, u.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token generation failed"})
	}

	u.Password = ""
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Signed in successfully",
		"user":    u,
		"token":   token,
	})
}
