package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/permission"
	"github.com/threadline/storefront/internal/domain/repository"
)

// managePermissions is the set allowed to list users and change grants.
var managePermissions = permission.NewSet(permission.Admin, permission.PermissionUpdate)

// UserService covers account reads and permission administration.
type UserService struct {
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

// Me returns the current user, or ErrAuthRequired without a session.
func (s *UserService) Me(ctx context.Context, userID string) (*entity.User, error) {
	if err := RequireAuthenticated(userID); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthRequired
		}
		return nil, err
	}
	return u, nil
}

// ListUsers requires {ADMIN, PERMISSIONUPDATE}.
func (s *UserService) ListUsers(ctx context.Context, requestingUserID string) ([]*entity.User, error) {
	requester, err := s.Me(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if err := RequirePermission(requester, managePermissions); err != nil {
		return nil, err
	}
	return s.Users.List(ctx)
}

// UpdatePermissions replaces the target user's permission set. Grants are
// parsed against the closed enum; unknown names fail validation.
func (s *UserService) UpdatePermissions(ctx context.Context, requestingUserID, targetUserID string, grants []string) (*entity.User, error) {
	requester, err := s.Me(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if err := RequirePermission(requester, managePermissions); err != nil {
		return nil, err
	}

	set, err := permission.ParseSet(grants)
	if err != nil {
		return nil, ErrValidation
	}
	updated, err := s.Users.UpdatePermissions(ctx, targetUserID, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.Logger.WithField("user_id", targetUserID).WithField("permissions", set.String()).Info("permissions updated")
	return updated, nil
}
