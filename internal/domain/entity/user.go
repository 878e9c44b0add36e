package entity

import (
	"time"

	"github.com/threadline/storefront/internal/domain/permission"
)

// User is the aggregate root for accounts. Password holds a bcrypt hash,
// never plaintext. ResetToken/ResetTokenExpiry are set only while a password
// reset is pending and cleared on consumption.
type User struct {
	ID               string
	Email            string
	Password         string
	Name             string
	Permissions      permission.Set
	ResetToken       *string
	ResetTokenExpiry *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
