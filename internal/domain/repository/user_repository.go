package repository

import (
	"context"
	"time"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/permission"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)

	// SetResetToken stores a pending reset token and its expiry on the user.
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
	// GetByResetToken matches a user whose stored token equals token and
	// whose expiry is strictly after now.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error)
	// ResetPassword replaces the password hash and clears any pending reset
	// token in the same statement, enforcing single use.
	ResetPassword(ctx context.Context, id, passwordHash string) error

	UpdatePermissions(ctx context.Context, id string, perms permission.Set) (*entity.User, error)
}
