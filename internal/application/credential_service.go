package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/permission"
	"github.com/threadline/storefront/internal/domain/repository"
	"github.com/threadline/storefront/pkg/helpers"
)

// Session is a signed credential plus its expiry, ready to be written into
// the response cookie sink by the transport layer.
type Session struct {
	Token  string
	Expiry time.Time
}

// CredentialService handles signup, signin and session issuance.
type CredentialService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewCredentialService(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *CredentialService {
	return &CredentialService{Users: users, JWT: jwt, Logger: logger}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validSignup(email, password, name string) bool {
	return strings.Contains(email, "@") && len(password) >= 8 && name != ""
}

// Signup creates a user with the default {USER} permission set and issues a
// session credential for it.
func (s *CredentialService) Signup(ctx context.Context, email, password, name string) (*entity.User, Session, error) {
	email = NormalizeEmail(email)
	if !validSignup(email, password, name) {
		return nil, Session{}, ErrValidation
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, Session{}, err
	}
	u := &entity.User{
		Email:       email,
		Password:    hash,
		Name:        name,
		Permissions: permission.NewSet(permission.User),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Session{}, ErrDuplicateEmail
		}
		return nil, Session{}, err
	}

	sess, err := s.issueSession(u.ID)
	if err != nil {
		return nil, Session{}, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user signed up")
	return u, sess, nil
}

// Signin verifies the password against the stored hash and issues a fresh
// session credential.
func (s *CredentialService) Signin(ctx context.Context, email, password string) (*entity.User, Session, error) {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Session{}, ErrNotFound
		}
		return nil, Session{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, Session{}, ErrInvalidCredentials
	}

	sess, err := s.issueSession(u.ID)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

func (s *CredentialService) issueSession(userID string) (Session, error) {
	tok, exp, err := s.JWT.GenerateSessionToken(userID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("session token generation failed")
		return Session{}, err
	}
	return Session{Token: tok, Expiry: exp}, nil
}
