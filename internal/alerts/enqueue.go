package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// ensureClient returns a usable client instance
func ensureClient() *asynq.Client {
	if client == nil {
		Init()
	}
	return client
}

// EnqueueBookingCreated notifies the taskio that a customer booked a service.
func EnqueueBookingCreated(bookingID, taskioID, customerID, taskioEmail string, amount float64) error {
	env := EmailEnvelope{
		To:      taskioEmail,
		Subject: "You have a new booking request",
		Body:    fmt.Sprintf("Booking %s is awaiting your confirmation. Total %.2f.", bookingID, amount),
	}
	payload := BookingCreatedPayload{
		BookingID: bookingID, TaskioID: taskioID, CustomerID: customerID,
		Email: taskioEmail, Amount: amount, Envelope: env, SentAt: time.Now(),
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskBookingCreated, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}

// EnqueueBookingStatus notifies the customer after the taskio moved the
// booking to a new status.
func EnqueueBookingStatus(bookingID, status, customerEmail string) error {
	env := EmailEnvelope{
		To:      customerEmail,
		Subject: fmt.Sprintf("Your booking is now %s", status),
		Body:    fmt.Sprintf("Booking %s changed status to %s.", bookingID, status),
	}
	payload := BookingStatusPayload{
		BookingID: bookingID, Status: status, Email: customerEmail,
		Envelope: env, SentAt: time.Now(),
	}
	b, _ := json.Marshal(payload)
	task := asynq.NewTask(TaskBookingStatus, b)
	_, err := ensureClient().Enqueue(task, asynq.Queue("emails"))
	return err
}
