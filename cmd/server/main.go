package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/taskio-app/taskio/internal/alerts"
	"github.com/taskio-app/taskio/internal/auth"
	"github.com/taskio-app/taskio/internal/booking"
	"github.com/taskio-app/taskio/internal/catalog"
	"github.com/taskio-app/taskio/internal/config"
	"github.com/taskio-app/taskio/internal/dashboard"
	"github.com/taskio-app/taskio/internal/db"
	mware "github.com/taskio-app/taskio/internal/middleware"
	"github.com/taskio-app/taskio/internal/storage"
	"github.com/taskio-app/taskio/internal/user"
)

func main() {
	config.Load()

	// Initialize database connection
	db.Init()

	if err := alerts.ConfigureMailerFromEnv(); err != nil {
		log.Printf("mailer not configured, email notifications disabled: %v", err)
	}
	alerts.Init()
	defer alerts.Close()

	if err := storage.Init(context.Background()); err != nil {
		log.Printf("object storage unavailable, uploads disabled: %v", err)
	}

	e := echo.New()
	e.HideBanner = true

	// Basic middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// Health and root routes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "taskio"})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if db.Conn == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db not initialized"})
		}
		if err := db.Conn.Ping(context.Background()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready", "error": "db unreachable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Public routes
	// Auth routes with per-IP rate limiting to protect signup/signin from abuse
	authGroup := e.Group("/auth")
	authGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/signup", auth.Signup)
	authGroup.POST("/signin", auth.Signin)
	authGroup.GET("/verify", auth.Verify)

	e.GET("/services/public", catalog.GetPublicServices)
	e.GET("/services/:id", catalog.GetService)

	// Protected routes
	api := e.Group("")
	api.Use(mware.JWTMiddleware)

	api.PATCH("/user/profile", user.UpdateProfile)
	api.POST("/user/upload-image", user.UploadImage)

	api.GET("/services", catalog.GetOwnServices, mware.RequireRoles(user.RoleTaskio))
	api.POST("/services", catalog.CreateService, mware.RequireRoles(user.RoleTaskio))
	api.PATCH("/services/:id", catalog.UpdateService, mware.RequireRoles(user.RoleTaskio))
	api.DELETE("/services/:id", catalog.DeleteService, mware.RequireRoles(user.RoleTaskio))

	api.POST("/bookings", booking.CreateBooking)
	api.GET("/bookings", booking.GetUserBookings)
	api.GET("/bookings/:id", booking.GetBooking)
	api.PATCH("/bookings/:id", booking.UpdateBookingStatus)

	api.GET("/dashboard/stats", dashboard.Stats, mware.RequireRoles(user.RoleTaskio))

	// Start server
	if err := e.Start(":" + config.App.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
