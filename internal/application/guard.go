package application

import (
	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/permission"
)

// RequireAuthenticated fails when the request carries no session identity.
func RequireAuthenticated(userID string) error {
	if userID == "" {
		return ErrAuthRequired
	}
	return nil
}

// RequirePermission fails unless the user's permission set intersects anyOf.
func RequirePermission(u *entity.User, anyOf permission.Set) error {
	if u == nil {
		return ErrAuthRequired
	}
	if !u.Permissions.Intersects(anyOf) {
		return ErrForbidden
	}
	return nil
}

// RequireOwnerOr passes when the user owns the resource, otherwise falls
// back to a permission check against anyOf.
func RequireOwnerOr(u *entity.User, ownerID string, anyOf permission.Set) error {
	if u == nil {
		return ErrAuthRequired
	}
	if u.ID == ownerID {
		return nil
	}
	return RequirePermission(u, anyOf)
}
