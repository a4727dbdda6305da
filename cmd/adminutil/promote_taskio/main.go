package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/taskio-app/taskio/internal/config"
	"github.com/taskio-app/taskio/internal/db"
)

// promote_taskio sets a user's role to 'taskio' by email.
// Usage:
//   go run cmd/adminutil/promote_taskio/main.go -email user@example.com
func main() {
	email := flag.String("email", "", "Email of the user to promote to taskio")
	flag.Parse()

	if *email == "" {
		log.Fatalf("usage: go run cmd/adminutil/promote_taskio/main.go -email user@example.com")
	}

	config.Load()
	db.Init()

	ct, err := db.Conn.Exec(context.Background(),
		`UPDATE users SET role = 'taskio' WHERE email = $1`, strings.ToLower(*email))
	if err != nil {
		log.Fatalf("failed to promote user to taskio: %v", err)
	}

	if ct.RowsAffected() == 0 {
		log.Fatalf("no user found with email: %s", *email)
	}

	fmt.Printf("User %s promoted to taskio.\n", *email)
}
