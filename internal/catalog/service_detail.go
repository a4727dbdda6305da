package catalog

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskio-app/taskio/internal/db"
)

// GetService returns one listing by id. Public read, used by detail pages.
// GET /services/:id
func GetService(c echo.Context) error {
	serviceID := c.Param("id")

	row := db.Conn.QueryRow(c.Request().Context(),
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`, serviceID)
	s, err := scanService(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch service"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Service fetched successfully",
		"service": s,
	})
}

// UpdateService applies a partial update to a listing owned by the
// authenticated taskio. Constrained fields are re-validated before writing.
// PATCH /services/:id
func UpdateService(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	serviceID := c.Param("id")

	patch := new(ServicePatch)
	if err := c.Bind(patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := ValidatePatch(patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var ownerID string
	err := db.Conn.QueryRow(c.Request().Context(),
		`SELECT taskio_id FROM services WHERE id = $1`, serviceID).Scan(&ownerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch service"})
	}
	if ownerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "You are not authorized to update this service"})
	}

	sets := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Tags != nil {
		add("tags", *patch.Tags)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.PricingModel != nil {
		add("pricing_model", *patch.PricingModel)
	}
	if patch.PriceRange != nil {
		add("price_min", patch.PriceRange.Min)
		add("price_max", patch.PriceRange.Max)
		if patch.PriceRange.Currency != "" {
			add("currency", patch.PriceRange.Currency)
		}
	}
	if patch.IsNegotiable != nil {
		add("is_negotiable", *patch.IsNegotiable)
	}
	if patch.Availability != nil {
		add("availability", *patch.Availability)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Experience != nil {
		add("experience", *patch.Experience)
	}
	if patch.Portfolio != nil {
		add("portfolio", *patch.Portfolio)
	}
	if patch.Booking != nil {
		add("booking_policy", *patch.Booking)
	}
	if patch.AdditionalInfo != nil {
		add("additional_info", *patch.AdditionalInfo)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	add("updated_at", time.Now())

	args = append(args, serviceID)
	query := "UPDATE services SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)) + serviceColumns

	row := db.Conn.QueryRow(c.Request().Context(), query, args...)
	s, err := scanService(row)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update service"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Service updated successfully",
		"service": s,
	})
}

// DeleteService retires a listing owned by the authenticated taskio. The row
// is kept and deactivated so existing bookings keep a valid reference.
// DELETE /services/:id
func DeleteService(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	serviceID := c.Param("id")

	var ownerID string
	err := db.Conn.QueryRow(c.Request().Context(),
		`SELECT taskio_id FROM services WHERE id = $1`, serviceID).Scan(&ownerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch service"})
	}
	if ownerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "You are not authorized to delete this service"})
	}

	_, err = db.Conn.Exec(c.Request().Context(),
		`UPDATE services SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, serviceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete service"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Service deleted successfully"})
}
