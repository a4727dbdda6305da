package booking

import (
	"errors"
	"fmt"
	"math"
)

// totalPriceTolerance absorbs float rounding between price*quantity and the
// client-computed total.
const totalPriceTolerance = 0.01

var (
	// ErrServiceInactive signals a booking attempt against a retired listing.
	ErrServiceInactive = errors.New("booking: service is not available for booking")
	// ErrTaskioMismatch signals that the supplied taskio does not own the service.
	ErrTaskioMismatch = errors.New("booking: invalid taskio for this service")
	// ErrPriceOutOfRange signals a price outside the service's declared range.
	ErrPriceOutOfRange = errors.New("booking: price is outside the allowed range")
	// ErrTotalMismatch signals totalPrice != price * quantity.
	ErrTotalMismatch = errors.New("booking: total price calculation is incorrect")
)

// Request is the allow-listed client input for booking creation. The customer
// identity always comes from the authenticated principal.
type Request struct {
	ServiceID           string  `json:"serviceId"`
	TaskioID            string  `json:"taskioId"`
	Price               float64 `json:"price"`
	Quantity            int     `json:"quantity"`
	TotalPrice          float64 `json:"totalPrice"`
	BookingDate         string  `json:"bookingDate"`
	BookingTime         string  `json:"bookingTime"`
	Address             string  `json:"address"`
	City                string  `json:"city"`
	State               string  `json:"state"`
	ZipCode             string  `json:"zipCode"`
	SpecialInstructions string  `json:"specialInstructions"`
	ContactPhone        string  `json:"contactPhone"`
	ContactEmail        string  `json:"contactEmail"`
}

// ServiceTerms is the slice of a listing that booking creation validates
// against.
type ServiceTerms struct {
	TaskioID string
	IsActive bool
	PriceMin float64
	PriceMax float64
}

// ValidateRequest checks that every required field is present.
func ValidateRequest(req *Request) error {
	required := []struct {
		name  string
		empty bool
	}{
		{"serviceId", req.ServiceID == ""},
		{"taskioId", req.TaskioID == ""},
		{"price", req.Price == 0},
		{"quantity", req.Quantity == 0},
		{"totalPrice", req.TotalPrice == 0},
		{"bookingDate", req.BookingDate == ""},
		{"bookingTime", req.BookingTime == ""},
		{"address", req.Address == ""},
		{"city", req.City == ""},
		{"state", req.State == ""},
		{"zipCode", req.ZipCode == ""},
		{"contactPhone", req.ContactPhone == ""},
		{"contactEmail", req.ContactEmail == ""},
	}
	for _, f := range required {
		if f.empty {
			return fmt.Errorf("booking: %s is required", f.name)
		}
	}
	if req.Quantity < 1 {
		return fmt.Errorf("booking: quantity must be at least 1")
	}
	return nil
}

// ValidateTerms checks the request against the booked service: the listing
// must be active, owned by the supplied taskio, the price must fall inside
// the declared range and the total must match price * quantity.
func ValidateTerms(req *Request, svc ServiceTerms) error {
	if !svc.IsActive {
		return ErrServiceInactive
	}
	if svc.TaskioID != req.TaskioID {
		return ErrTaskioMismatch
	}
	if req.Price < svc.PriceMin || req.Price > svc.PriceMax {
		return ErrPriceOutOfRange
	}
	expected := req.Price * float64(req.Quantity)
	if math.Abs(req.TotalPrice-expected) > totalPriceTolerance {
		return ErrTotalMismatch
	}
	return nil
}
