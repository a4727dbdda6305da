package user

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskio-app/taskio/internal/db"
)

type UpdateProfileRequest struct {
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
	HeaderImage    string `json:"headerImage"`
}

// UpdateProfile applies a partial update to the caller's account. Empty
// fields keep their current value.
// PATCH /user/profile
func UpdateProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	query := `
		UPDATE users
		SET name = COALESCE(NULLIF($1, ''), name),
		    profile_picture = COALESCE(NULLIF($2, ''), profile_picture),
		    header_image = COALESCE(NULLIF($3, ''), header_image)
		WHERE id = $4
		RETURNING id, name, email, role, COALESCE(profile_picture, ''), COALESCE(header_image, ''), created_at
	`
	var u User
	err := db.Conn.QueryRow(c.Request().Context(), query,
		req.Name, req.ProfilePicture, req.HeaderImage, userID,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.ProfilePicture, &u.HeaderImage, &u.CreatedAt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update profile"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully",
		"user":    u,
	})
}
