//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/taskio-app/taskio/internal/auth"
	"github.com/taskio-app/taskio/internal/booking"
	"github.com/taskio-app/taskio/internal/catalog"
	"github.com/taskio-app/taskio/internal/config"
	"github.com/taskio-app/taskio/internal/dashboard"
	"github.com/taskio-app/taskio/internal/db"
	mware "github.com/taskio-app/taskio/internal/middleware"
	"github.com/taskio-app/taskio/internal/user"
)

var baseURL string

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("taskio"),
		postgres.WithUsername("taskio"),
		postgres.WithPassword("taskio"),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		os.Exit(1)
	}

	config.App = &config.Config{
		JWTSecret: []byte("e2e-secret"),
		JWTExp:    time.Hour,
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create pool: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		os.Exit(1)
	}
	db.Conn = pool
	if err := db.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "failed to apply schema: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		os.Exit(1)
	}

	srv := httptest.NewServer(buildRouter())
	baseURL = srv.URL

	code := m.Run()

	srv.Close()
	pool.Close()
	_ = pgContainer.Terminate(context.Background())
	os.Exit(code)
}

func buildRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.POST("/auth/signup", auth.Signup)
	e.POST("/auth/signin", auth.Signin)
	e.GET("/auth/verify", auth.Verify)

	e.GET("/services/public", catalog.GetPublicServices)
	e.GET("/services/:id", catalog.GetService)

	api := e.Group("")
	api.Use(mware.JWTMiddleware)

	api.GET("/services", catalog.GetOwnServices, mware.RequireRoles(user.RoleTaskio))
	api.POST("/services", catalog.CreateService, mware.RequireRoles(user.RoleTaskio))
	api.PATCH("/services/:id", catalog.UpdateService, mware.RequireRoles(user.RoleTaskio))
	api.DELETE("/services/:id", catalog.DeleteService, mware.RequireRoles(user.RoleTaskio))

	api.POST("/bookings", booking.CreateBooking)
	api.GET("/bookings", booking.GetUserBookings)
	api.GET("/bookings/:id", booking.GetBooking)
	api.PATCH("/bookings/:id", booking.UpdateBookingStatus)

	api.GET("/dashboard/stats", dashboard.Stats, mware.RequireRoles(user.RoleTaskio))

	return e
}

func doJSON(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, baseURL+path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return resp, decoded
}

func signup(t *testing.T, name, email, role string) (token, id string) {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, "/auth/signup", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup %s: status %d, body %v", email, resp.StatusCode, body)
	}
	token = body["token"].(string)
	id = body["user"].(map[string]any)["id"].(string)
	return token, id
}

func TestSignupDuplicateEmailIsCaseInsensitive(t *testing.T) {
	email := fmt.Sprintf("dup_%d@example.com", time.Now().UnixNano())
	signup(t, "First", email, "seeker")

	resp, body := doJSON(t, http.MethodPost, "/auth/signup", "", map[string]any{
		"name":     "Second",
		"email":    "DUP_" + email[4:],
		"password": "secret123",
		"role":     "seeker",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate signup: status %d, body %v", resp.StatusCode, body)
	}
	if body["error"] != "User with this email already exists" {
		t.Fatalf("duplicate signup error = %v", body["error"])
	}
}

func TestBookingLifecycle(t *testing.T) {
	nonce := time.Now().UnixNano()
	taskioToken, taskioID := signup(t, "Pro", fmt.Sprintf("pro_%d@example.com", nonce), "taskio")
	customerToken, _ := signup(t, "Customer", fmt.Sprintf("cust_%d@example.com", nonce), "seeker")
	strangerToken, _ := signup(t, "Stranger", fmt.Sprintf("other_%d@example.com", nonce), "seeker")

	resp, body := doJSON(t, http.MethodPost, "/services", taskioToken, map[string]any{
		"title":        "Deep Cleaning",
		"description":  "Full apartment deep clean",
		"category":     "cleaning",
		"pricingModel": "hourly",
		"priceRange":   map[string]any{"min": 20, "max": 50, "currency": "USD"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create service: status %d, body %v", resp.StatusCode, body)
	}
	serviceID := body["service"].(map[string]any)["id"].(string)

	resp, body = doJSON(t, http.MethodPost, "/bookings", customerToken, map[string]any{
		"serviceId":    serviceID,
		"taskioId":     taskioID,
		"price":        30,
		"quantity":     2,
		"totalPrice":   60,
		"bookingDate":  "2026-09-15",
		"bookingTime":  "10:00",
		"address":      "12 Main St",
		"city":         "Springfield",
		"state":        "IL",
		"zipCode":      "62701",
		"contactPhone": "555-0100",
		"contactEmail": fmt.Sprintf("cust_%d@example.com", nonce),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create booking: status %d, body %v", resp.StatusCode, body)
	}
	b := body["booking"].(map[string]any)
	bookingID := b["id"].(string)
	if b["status"] != "pending" {
		t.Fatalf("new booking status = %v, want pending", b["status"])
	}

	// A third party cannot read the booking
	resp, body = doJSON(t, http.MethodGet, "/bookings/"+bookingID, strangerToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("third party read: status %d, body %v", resp.StatusCode, body)
	}

	// The customer cannot advance the status
	resp, _ = doJSON(t, http.MethodPatch, "/bookings/"+bookingID, customerToken,
		map[string]any{"status": "confirmed"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer status update: status %d", resp.StatusCode)
	}

	// Skipping a step is rejected
	resp, body = doJSON(t, http.MethodPatch, "/bookings/"+bookingID, taskioToken,
		map[string]any{"status": "completed"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("skip transition: status %d, body %v", resp.StatusCode, body)
	}

	for _, status := range []string{"confirmed", "in-progress", "completed"} {
		resp, body = doJSON(t, http.MethodPatch, "/bookings/"+bookingID, taskioToken,
			map[string]any{"status": status})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("transition to %s: status %d, body %v", status, resp.StatusCode, body)
		}
		if got := body["booking"].(map[string]any)["status"]; got != status {
			t.Fatalf("status after transition = %v, want %s", got, status)
		}
	}

	// Terminal state rejects any further change
	resp, _ = doJSON(t, http.MethodPatch, "/bookings/"+bookingID, taskioToken,
		map[string]any{"status": "cancelled"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("transition out of completed: status %d", resp.StatusCode)
	}

	// Completed work shows up in the dashboard
	resp, body = doJSON(t, http.MethodGet, "/dashboard/stats", taskioToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard stats: status %d, body %v", resp.StatusCode, body)
	}
	stats := body["stats"].(map[string]any)
	if stats["completedJobs"].(float64) < 1 {
		t.Fatalf("completedJobs = %v, want >= 1", stats["completedJobs"])
	}
	if stats["totalEarnings"].(float64) < 60 {
		t.Fatalf("totalEarnings = %v, want >= 60", stats["totalEarnings"])
	}
}

func TestPublicListingExcludesInactiveServices(t *testing.T) {
	nonce := time.Now().UnixNano()
	taskioToken, _ := signup(t, "Lister", fmt.Sprintf("lister_%d@example.com", nonce), "taskio")

	title := fmt.Sprintf("Gutter Cleaning %d", nonce)
	resp, body := doJSON(t, http.MethodPost, "/services", taskioToken, map[string]any{
		"title":        title,
		"description":  "Seasonal gutter clearing",
		"category":     "maintenance",
		"pricingModel": "fixed",
		"priceRange":   map[string]any{"min": 80, "max": 120, "currency": "USD"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create service: status %d, body %v", resp.StatusCode, body)
	}
	serviceID := body["service"].(map[string]any)["id"].(string)

	find := func() bool {
		resp, body := doJSON(t, http.MethodGet, "/services/public", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("public listing: status %d", resp.StatusCode)
		}
		services, _ := body["services"].([]any)
		for _, raw := range services {
			if raw.(map[string]any)["id"] == serviceID {
				return true
			}
		}
		return false
	}

	if !find() {
		t.Fatalf("active service missing from public listing")
	}

	resp, body = doJSON(t, http.MethodDelete, "/services/"+serviceID, taskioToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete service: status %d, body %v", resp.StatusCode, body)
	}

	if find() {
		t.Fatalf("deactivated service still in public listing")
	}

	// The detail route still resolves for the owner's records
	resp, _ = doJSON(t, http.MethodGet, "/services/"+serviceID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("detail after soft delete: status %d", resp.StatusCode)
	}
}
