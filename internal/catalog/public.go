package catalog

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskio-app/taskio/internal/db"
)

// GetPublicServices lists active services for unauthenticated browsing.
// Category is an exact match unless "all"; search is a case-insensitive
// substring match across title, description and tags.
// GET /services/public?category=&search=
func GetPublicServices(c echo.Context) error {
	category := c.QueryParam("category")
	search := c.QueryParam("search")

	query := `
        SELECT s.id, s.title, s.category, s.tags, s.description, s.service_image,
               s.pricing_model, s.price_min, s.price_max, s.currency, s.is_negotiable,
               s.location, s.experience, s.additional_info, s.created_at,
               u.id, u.name, u.profile_picture
        FROM services s
        JOIN users u ON u.id = s.taskio_id
        WHERE s.is_active`
	args := []any{}

	if category != "" && category != "all" {
		args = append(args, category)
		query += fmt.Sprintf(" AND s.category = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		query += fmt.Sprintf(` AND (s.title ILIKE $%d OR s.description ILIKE $%d
            OR EXISTS (SELECT 1 FROM unnest(s.tags) AS tag WHERE tag ILIKE $%d))`, n, n, n)
	}
	query += " ORDER BY s.created_at DESC"

	rows, err := db.Conn.Query(c.Request().Context(), query, args...)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch services"})
	}
	defer rows.Close()

	services := []PublicService{}
	for rows.Next() {
		var (
			s              PublicService
			serviceImage   *string
			profilePicture *string
		)
		err := rows.Scan(
			&s.ID, &s.Title, &s.Category, &s.Tags, &s.Description, &serviceImage,
			&s.PricingModel, &s.PriceRange.Min, &s.PriceRange.Max, &s.PriceRange.Currency,
			&s.IsNegotiable, &s.Location, &s.Experience, &s.AdditionalInfo, &s.CreatedAt,
			&s.Taskio.ID, &s.Taskio.Name, &profilePicture,
		)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse service record"})
		}
		if serviceImage != nil {
			s.ServiceImage = *serviceImage
		}
		if profilePicture != nil {
			s.Taskio.ProfilePicture = *profilePicture
		}
		services = append(services, s)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Services fetched successfully",
		"services": services,
	})
}
