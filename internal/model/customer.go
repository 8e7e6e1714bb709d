package model

import "time"

// Customer represents a storefront customer, looked up by email.
type Customer struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Identity is the authenticated identity attached to a session by the
// sign-in shim. Auth mechanics themselves live outside this service.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
