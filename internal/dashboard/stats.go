package dashboard

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskio-app/taskio/internal/db"
)

type activityItem struct {
	ID           string  `json:"id"`
	ServiceTitle string  `json:"serviceTitle"`
	CustomerName string  `json:"customerName"`
	Status       string  `json:"status"`
	TotalPrice   float64 `json:"totalPrice"`
	TimeAgo      string  `json:"timeAgo"`
}

// Stats aggregates a taskio's earnings, job counts and recent activity.
// GET /dashboard/stats
func Stats(c echo.Context) error {
	uid, ok := c.Get("user_id").(string)
	if !ok || uid == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx := c.Request().Context()

	var totalEarnings float64
	var activeJobs, completedJobs, totalServices int

	_ = db.Conn.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE taskio_id = $1 AND status = 'completed'`,
		uid).Scan(&totalEarnings)
	_ = db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE taskio_id = $1 AND status IN ('pending', 'confirmed', 'in-progress')`,
		uid).Scan(&activeJobs)
	_ = db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE taskio_id = $1 AND status = 'completed'`,
		uid).Scan(&completedJobs)
	_ = db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM services WHERE taskio_id = $1`,
		uid).Scan(&totalServices)

	recent := []activityItem{}
	rows, err := db.Conn.Query(ctx, `
        SELECT b.id, s.title, u.name, b.status, b.total_price, b.created_at
        FROM bookings b
        LEFT JOIN services s ON s.id = b.service_id
        LEFT JOIN users u ON u.id = b.customer_id
        WHERE b.taskio_id = $1
        ORDER BY b.created_at DESC
        LIMIT 5`, uid)
	if err != nil {
		log.Printf("dashboard recent activity query failed: %v", err)
	} else {
		defer rows.Close()
		now := time.Now()
		for rows.Next() {
			var (
				item      activityItem
				title     *string
				customer  *string
				createdAt time.Time
			)
			if err := rows.Scan(&item.ID, &title, &customer, &item.Status, &item.TotalPrice, &createdAt); err != nil {
				log.Printf("dashboard activity scan failed: %v", err)
				continue
			}
			item.ServiceTitle = "Unknown Service"
			if title != nil {
				item.ServiceTitle = *title
			}
			item.CustomerName = "Unknown Customer"
			if customer != nil {
				item.CustomerName = *customer
			}
			item.TimeAgo = timeAgo(createdAt, now)
			recent = append(recent, item)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"stats": echo.Map{
			"totalEarnings": totalEarnings,
			"activeJobs":    activeJobs,
			"completedJobs": completedJobs,
			"totalServices": totalServices,
			// Ratings are not collected yet; placeholder until reviews land.
			"averageRating":  4.8,
			"recentActivity": recent,
		},
	})
}
