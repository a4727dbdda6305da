package alerts

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"

	"github.com/taskio-app/taskio/internal/config"
)

var (
	client *asynq.Client
	server *asynq.Server
)

// Init starts the Asynq server and initializes a shared client. Notifications
// are best-effort: if Redis is unreachable, enqueues fail and are logged by
// the callers, never surfaced to API clients.
func Init() {
	opts := asynq.RedisClientOpt{Addr: config.App.RedisAddr}
	client = asynq.NewClient(opts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskBookingCreated, handleBookingCreated)
	mux.HandleFunc(TaskBookingStatus, handleBookingStatus)

	server = asynq.NewServer(opts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"emails": 10,
		},
	})
	go func() {
		if err := server.Run(mux); err != nil {
			log.Printf("Asynq server stopped: %v", err)
		}
	}()

	log.Printf("Asynq initialized (addr=%s)", config.App.RedisAddr)
}

// Close releases the client and stops the server.
func Close() {
	if client != nil {
		_ = client.Close()
	}
	if server != nil {
		server.Shutdown()
	}
}

func handleBookingCreated(_ context.Context, t *asynq.Task) error {
	var p BookingCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if err := SendEmail(p.Email, p.Envelope.Subject, p.Envelope.Body); err != nil {
		log.Printf("[notify][ERROR] BookingCreated send failed: %v", err)
		return err
	}
	log.Printf("[notify] BookingCreated sent -> booking=%s to=%s", p.BookingID, p.Email)
	return nil
}

func handleBookingStatus(_ context.Context, t *asynq.Task) error {
	var p BookingStatusPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if err := SendEmail(p.Email, p.Envelope.Subject, p.Envelope.Body); err != nil {
		log.Printf("[notify][ERROR] BookingStatus send failed: %v", err)
		return err
	}
	log.Printf("[notify] BookingStatus sent -> booking=%s status=%s to=%s", p.BookingID, p.Status, p.Email)
	return nil
}
