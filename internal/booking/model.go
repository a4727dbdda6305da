package booking

import "time"

// Booking is a transaction between a customer and a taskio for one service.
// API responses carry the joined summaries instead of raw reference ids.
type Booking struct {
	ID                  string          `json:"id"`
	Service             ServiceSummary  `json:"service"`
	Taskio              PartySummary    `json:"taskio"`
	Customer            PartySummary    `json:"customer"`
	Price               float64         `json:"price"`
	Quantity            int             `json:"quantity"`
	TotalPrice          float64         `json:"totalPrice"`
	BookingDate         time.Time       `json:"bookingDate"`
	BookingTime         string          `json:"bookingTime"`
	Address             string          `json:"address"`
	City                string          `json:"city"`
	State               string          `json:"state"`
	ZipCode             string          `json:"zipCode"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
	ContactPhone        string          `json:"contactPhone"`
	ContactEmail        string          `json:"contactEmail"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// ServiceSummary is the booked listing reduced to display fields.
type ServiceSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	ServiceImage string `json:"serviceImage,omitempty"`
}

// PartySummary identifies either side of a booking.
type PartySummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}
