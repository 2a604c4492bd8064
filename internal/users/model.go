package users

import (
	"time"

	"github.com/storepilot/storepilot/internal/identity"
)

// BaseUser is a row of the legacy/base profile table.
type BaseUser struct {
	ID        string
	Email     string
	Name      string
	Role      identity.Role
	CreatedAt time.Time
}

// ProfileRef is an admins/owners profile row.
type ProfileRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ClientAccount is an end-customer account scoped to one store.
type ClientAccount struct {
	ID      string  `json:"id"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	StoreID *string `json:"store_id,omitempty"`
}

// StoreRef is the slim store projection used in the directory.
type StoreRef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	OwnerID *string `json:"owner_id,omitempty"`
}

// DirectoryUser is a dashboard user with its merged role view and the
// stores reachable from it.
type DirectoryUser struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      identity.Role `json:"role"`
	CreatedAt time.Time     `json:"created_at"`
	Stores    []StoreRef    `json:"stores"`
}
