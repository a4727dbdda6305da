package user

import "time"

// User is an account record. The password hash is never serialized.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	Role           string    `json:"role"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	HeaderImage    string    `json:"headerImage,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

const (
	RoleSeeker = "seeker"
	RoleTaskio = "taskio"
)
