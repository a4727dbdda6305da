package alerts

import "time"

// Task type constants
const (
	TaskBookingCreated = "email:booking_created"
	TaskBookingStatus  = "email:booking_status"
)

// EmailEnvelope is the common shape for email-like notifications.
type EmailEnvelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// BookingCreatedPayload notifies the taskio that a new booking arrived.
type BookingCreatedPayload struct {
	BookingID  string        `json:"booking_id"`
	TaskioID   string        `json:"taskio_id"`
	CustomerID string        `json:"customer_id"`
	Email      string        `json:"email"`
	Amount     float64       `json:"amount"`
	Envelope   EmailEnvelope `json:"envelope"`
	SentAt     time.Time     `json:"sent_at"`
}

// BookingStatusPayload notifies the customer of a status change.
type BookingStatusPayload struct {
	BookingID string        `json:"booking_id"`
	Status    string        `json:"status"`
	Email     string        `json:"email"`
	Envelope  EmailEnvelope `json:"envelope"`
	SentAt    time.Time     `json:"sent_at"`
}
