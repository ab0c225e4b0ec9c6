package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeviceToken is a delivery token minted by the push provider for one
// browser installation. The backend treats it as opaque; a token belongs
// to exactly one user at a time.
type DeviceToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Token     string    `json:"-" db:"token"`
	UserAgent *string   `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
