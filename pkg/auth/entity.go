package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is an HR account. CompanyName personalizes outbound candidate emails.
type User struct {
	ID           uuid.UUID
	Email        string
	CompanyName  string
	PasswordHash string
	CreatedAt    time.Time
}
