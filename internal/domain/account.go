package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is an operator identity. The password hash is opaque to the
// engine: it is written once at registration and only ever compared by
// whatever authentication layer sits in front of this module.
type Account struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
