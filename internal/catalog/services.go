package catalog

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskio-app/taskio/internal/db"
)

const serviceColumns = `
    id, taskio_id, title, category, tags, description, pricing_model,
    price_min, price_max, currency, is_negotiable, service_image,
    availability, location, experience, portfolio, booking_policy,
    additional_info, is_active, created_at, updated_at`

func scanService(row pgx.Row) (Service, error) {
	var (
		s            Service
		serviceImage *string
	)
	err := row.Scan(
		&s.ID, &s.TaskioID, &s.Title, &s.Category, &s.Tags, &s.Description,
		&s.PricingModel, &s.PriceRange.Min, &s.PriceRange.Max, &s.PriceRange.Currency,
		&s.IsNegotiable, &serviceImage, &s.Availability, &s.Location, &s.Experience,
		&s.Portfolio, &s.Booking, &s.AdditionalInfo, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return Service{}, err
	}
	if serviceImage != nil {
		s.ServiceImage = *serviceImage
	}
	return s, nil
}

// GetOwnServices returns all listings owned by the authenticated taskio,
// newest first.
// GET /services
func GetOwnServices(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	rows, err := db.Conn.Query(c.Request().Context(),
		`SELECT `+serviceColumns+` FROM services WHERE taskio_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch services"})
	}
	defer rows.Close()

	services := []Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse service record"})
		}
		services = append(services, s)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Services fetched successfully",
		"services": services,
	})
}

// CreateService lists a new service owned by the authenticated taskio. The
// owner always comes from the token, never from the request body.
// POST /services
func CreateService(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	req := new(ServiceRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := ValidateNew(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	currency := req.PriceRange.Currency
	if currency == "" {
		currency = "USD"
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	row := db.Conn.QueryRow(c.Request().Context(), `
        INSERT INTO services (
            id, taskio_id, title, category, tags, description, pricing_model,
            price_min, price_max, currency, is_negotiable,
            availability, location, experience, portfolio, booking_policy,
            additional_info, is_active, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, TRUE, $18, $18)
        RETURNING `+serviceColumns,
		uuid.New().String(), uid, req.Title, req.Category, tags, req.Description,
		req.PricingModel, req.PriceRange.Min, req.PriceRange.Max, currency,
		req.IsNegotiable, req.Availability, req.Location, req.Experience,
		req.Portfolio, req.Booking, req.AdditionalInfo, now,
	)
	s, err := scanService(row)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create service"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Service created successfully",
		"service": s,
	})
}
