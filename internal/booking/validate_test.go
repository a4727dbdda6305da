package booking

import (
	"errors"
	"strings"
	"testing"
)

func validBookingRequest() *Request {
	return &Request{
		ServiceID:    "svc-1",
		TaskioID:     "taskio-1",
		Price:        30,
		Quantity:     2,
		TotalPrice:   60,
		BookingDate:  "2026-09-01",
		BookingTime:  "morning",
		Address:      "12 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62704",
		ContactPhone: "555-0100",
		ContactEmail: "seeker@example.com",
	}
}

func validTerms() ServiceTerms {
	return ServiceTerms{
		TaskioID: "taskio-1",
		IsActive: true,
		PriceMin: 20,
		PriceMax: 50,
	}
}

func TestValidateRequest(t *testing.T) {
	if err := ValidateRequest(validBookingRequest()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestValidateRequest_RequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"serviceId", func(r *Request) { r.ServiceID = "" }},
		{"taskioId", func(r *Request) { r.TaskioID = "" }},
		{"price", func(r *Request) { r.Price = 0 }},
		{"quantity", func(r *Request) { r.Quantity = 0 }},
		{"totalPrice", func(r *Request) { r.TotalPrice = 0 }},
		{"bookingDate", func(r *Request) { r.BookingDate = "" }},
		{"bookingTime", func(r *Request) { r.BookingTime = "" }},
		{"address", func(r *Request) { r.Address = "" }},
		{"city", func(r *Request) { r.City = "" }},
		{"state", func(r *Request) { r.State = "" }},
		{"zipCode", func(r *Request) { r.ZipCode = "" }},
		{"contactPhone", func(r *Request) { r.ContactPhone = "" }},
		{"contactEmail", func(r *Request) { r.ContactEmail = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validBookingRequest()
			tc.mutate(req)
			err := ValidateRequest(req)
			if err == nil {
				t.Fatal("expected error for missing field")
			}
			if !strings.Contains(err.Error(), tc.name) {
				t.Errorf("error %q does not name field %q", err, tc.name)
			}
		})
	}
}

func TestValidateTerms(t *testing.T) {
	if err := ValidateTerms(validBookingRequest(), validTerms()); err != nil {
		t.Fatalf("valid booking rejected: %v", err)
	}
}

func TestValidateTerms_InactiveService(t *testing.T) {
	terms := validTerms()
	terms.IsActive = false
	if err := ValidateTerms(validBookingRequest(), terms); !errors.Is(err, ErrServiceInactive) {
		t.Fatalf("expected ErrServiceInactive, got %v", err)
	}
}

func TestValidateTerms_TaskioMismatch(t *testing.T) {
	terms := validTerms()
	terms.TaskioID = "someone-else"
	if err := ValidateTerms(validBookingRequest(), terms); !errors.Is(err, ErrTaskioMismatch) {
		t.Fatalf("expected ErrTaskioMismatch, got %v", err)
	}
}

func TestValidateTerms_PriceRange(t *testing.T) {
	req := validBookingRequest()
	req.Price = 19.99
	req.TotalPrice = req.Price * 2
	if err := ValidateTerms(req, validTerms()); !errors.Is(err, ErrPriceOutOfRange) {
		t.Fatalf("expected ErrPriceOutOfRange below min, got %v", err)
	}

	req.Price = 50.01
	req.TotalPrice = req.Price * 2
	if err := ValidateTerms(req, validTerms()); !errors.Is(err, ErrPriceOutOfRange) {
		t.Fatalf("expected ErrPriceOutOfRange above max, got %v", err)
	}

	// Boundary values are allowed.
	req.Price = 20
	req.TotalPrice = 40
	if err := ValidateTerms(req, validTerms()); err != nil {
		t.Fatalf("min boundary rejected: %v", err)
	}
	req.Price = 50
	req.TotalPrice = 100
	if err := ValidateTerms(req, validTerms()); err != nil {
		t.Fatalf("max boundary rejected: %v", err)
	}
}

func TestValidateTerms_TotalPrice(t *testing.T) {
	req := validBookingRequest()
	req.TotalPrice = 59
	if err := ValidateTerms(req, validTerms()); !errors.Is(err, ErrTotalMismatch) {
		t.Fatalf("expected ErrTotalMismatch, got %v", err)
	}

	// Inside the 0.01 tolerance.
	req.TotalPrice = 60.009
	if err := ValidateTerms(req, validTerms()); err != nil {
		t.Fatalf("total inside tolerance rejected: %v", err)
	}

	req.TotalPrice = 60.02
	if err := ValidateTerms(req, validTerms()); !errors.Is(err, ErrTotalMismatch) {
		t.Fatalf("expected ErrTotalMismatch just outside tolerance, got %v", err)
	}
}
