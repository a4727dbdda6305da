package booking

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskio-app/taskio/internal/alerts"
	"github.com/taskio-app/taskio/internal/db"
)

const bookingJoin = `
    SELECT b.id, b.price, b.quantity, b.total_price, b.booking_date, b.booking_time,
           b.address, b.city, b.state, b.zip_code, b.special_instructions,
           b.contact_phone, b.contact_email, b.status, b.created_at, b.updated_at,
           s.id, s.title, s.category, s.service_image,
           t.id, t.name, t.profile_picture,
           cu.id, cu.name, cu.profile_picture
    FROM bookings b
    LEFT JOIN services s ON s.id = b.service_id
    LEFT JOIN users t ON t.id = b.taskio_id
    LEFT JOIN users cu ON cu.id = b.customer_id`

// errDanglingReference marks a booking whose joined service or party rows no
// longer resolve.
var errDanglingReference = errors.New("booking: dangling reference")

func scanJoinedBooking(row pgx.Row) (Booking, error) {
	var (
		b                   Booking
		specialInstructions *string
		serviceID           *string
		serviceTitle        *string
		serviceCategory     *string
		serviceImage        *string
		taskioID            *string
		taskioName          *string
		taskioPicture       *string
		customerID          *string
		customerName        *string
		customerPicture     *string
	)
	err := row.Scan(
		&b.ID, &b.Price, &b.Quantity, &b.TotalPrice, &b.BookingDate, &b.BookingTime,
		&b.Address, &b.City, &b.State, &b.ZipCode, &specialInstructions,
		&b.ContactPhone, &b.ContactEmail, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&serviceID, &serviceTitle, &serviceCategory, &serviceImage,
		&taskioID, &taskioName, &taskioPicture,
		&customerID, &customerName, &customerPicture,
	)
	if err != nil {
		return Booking{}, err
	}
	if serviceID == nil || taskioID == nil || customerID == nil {
		return b, errDanglingReference
	}
	if specialInstructions != nil {
		b.SpecialInstructions = *specialInstructions
	}
	b.Service = ServiceSummary{ID: *serviceID, Title: *serviceTitle, Category: *serviceCategory}
	if serviceImage != nil {
		b.Service.ServiceImage = *serviceImage
	}
	b.Taskio = PartySummary{ID: *taskioID, Name: *taskioName}
	if taskioPicture != nil {
		b.Taskio.ProfilePicture = *taskioPicture
	}
	b.Customer = PartySummary{ID: *customerID, Name: *customerName}
	if customerPicture != nil {
		b.Customer.ProfilePicture = *customerPicture
	}
	return b, nil
}

func parseBookingDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// CreateBooking places a booking against an active service. The principal
// becomes the customer; the booking starts in pending.
// POST /bookings
func CreateBooking(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	req := new(Request)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := ValidateRequest(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	bookingDate, err := parseBookingDate(req.BookingDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bookingDate must be a valid date"})
	}

	ctx := c.Request().Context()

	var terms ServiceTerms
	err = db.Conn.QueryRow(ctx,
		`SELECT taskio_id, is_active, price_min, price_max FROM services WHERE id = $1`,
		req.ServiceID,
	).Scan(&terms.TaskioID, &terms.IsActive, &terms.PriceMin, &terms.PriceMax)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch service"})
	}

	if err := ValidateTerms(req, terms); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	bookingID := uuid.New().String()
	_, err = db.Conn.Exec(ctx, `
        INSERT INTO bookings (
            id, service_id, taskio_id, customer_id, price, quantity, total_price,
            booking_date, booking_time, address, city, state, zip_code,
            special_instructions, contact_phone, contact_email, status, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 'pending', $17, $17)`,
		bookingID, req.ServiceID, req.TaskioID, uid, req.Price, req.Quantity, req.TotalPrice,
		bookingDate, req.BookingTime, req.Address, req.City, req.State, req.ZipCode,
		nullable(req.SpecialInstructions), req.ContactPhone, req.ContactEmail, time.Now(),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	b, err := scanJoinedBooking(db.Conn.QueryRow(ctx, bookingJoin+` WHERE b.id = $1`, bookingID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}

	// Notify the taskio (best-effort)
	var taskioEmail string
	_ = db.Conn.QueryRow(context.Background(), `SELECT email FROM users WHERE id = $1`, req.TaskioID).Scan(&taskioEmail)
	if taskioEmail != "" {
		if err := alerts.EnqueueBookingCreated(bookingID, req.TaskioID, uid, taskioEmail, req.TotalPrice); err != nil {
			log.Printf("booking created alert enqueue failed: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Booking created successfully",
		"booking": b,
	})
}

// GetUserBookings lists bookings where the principal sits in the requested
// role slot, newest first. Bookings whose joins no longer resolve are dropped
// and logged rather than surfaced.
// GET /bookings?role=customer|taskio
func GetUserBookings(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	column := "b.customer_id"
	if c.QueryParam("role") == "taskio" {
		column = "b.taskio_id"
	}

	rows, err := db.Conn.Query(c.Request().Context(),
		bookingJoin+` WHERE `+column+` = $1 ORDER BY b.created_at DESC`, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch bookings"})
	}
	defer rows.Close()

	bookings := []Booking{}
	for rows.Next() {
		b, err := scanJoinedBooking(rows)
		if err != nil {
			if errors.Is(err, errDanglingReference) {
				log.Printf("dropping booking %s from listing: unresolved reference", b.ID)
				continue
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to parse booking record"})
		}
		bookings = append(bookings, b)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Bookings fetched successfully",
		"bookings": bookings,
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
