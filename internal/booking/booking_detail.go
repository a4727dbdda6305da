package booking

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskio-app/taskio/internal/alerts"
	"github.com/taskio-app/taskio/internal/db"
)

// GetBooking returns a single booking to one of its participants.
// GET /bookings/:id
func GetBooking(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID := c.Param("id")

	ctx := c.Request().Context()

	var taskioID, customerID string
	err := db.Conn.QueryRow(ctx,
		`SELECT taskio_id, customer_id FROM bookings WHERE id = $1`, bookingID,
	).Scan(&taskioID, &customerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	if uid != taskioID && uid != customerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "You are not authorized to view this booking"})
	}

	b, err := scanJoinedBooking(db.Conn.QueryRow(ctx, bookingJoin+` WHERE b.id = $1`, bookingID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Booking fetched successfully",
		"booking": b,
	})
}

// UpdateBookingStatus advances a booking through its lifecycle. Only the
// booking's taskio may change the status, and only along allowed transitions.
// The update is keyed on the status the caller saw, so concurrent updates
// lose cleanly instead of double-applying.
// PATCH /bookings/:id
func UpdateBookingStatus(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID := c.Param("id")

	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if !ValidStatus(body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid status"})
	}

	ctx := c.Request().Context()

	var taskioID, currentStatus, customerID string
	err := db.Conn.QueryRow(ctx,
		`SELECT taskio_id, status, customer_id FROM bookings WHERE id = $1`, bookingID,
	).Scan(&taskioID, &currentStatus, &customerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	if uid != taskioID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "You are not authorized to update this booking"})
	}
	if err := CheckTransition(currentStatus, body.Status); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	tag, err := db.Conn.Exec(ctx,
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		body.Status, time.Now(), bookingID, currentStatus)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}
	if tag.RowsAffected() == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Booking was updated concurrently, please retry"})
	}

	b, err := scanJoinedBooking(db.Conn.QueryRow(ctx, bookingJoin+` WHERE b.id = $1`, bookingID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}

	// Notify the customer (best-effort)
	var customerEmail string
	_ = db.Conn.QueryRow(context.Background(), `SELECT email FROM users WHERE id = $1`, customerID).Scan(&customerEmail)
	if customerEmail != "" {
		if err := alerts.EnqueueBookingStatus(bookingID, body.Status, customerEmail); err != nil {
			log.Printf("booking status alert enqueue failed: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Booking status updated successfully",
		"booking": b,
	})
}
