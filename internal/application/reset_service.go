package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/domain/entity"
	"github.com/threadline/storefront/internal/domain/repository"
	"github.com/threadline/storefront/pkg/helpers"
	"github.com/threadline/storefront/pkg/mailer"
)

// ResetTokenTTL is the validity window of a reset token, measured from the
// moment the token is created.
const ResetTokenTTL = time.Hour

// PasswordResetService manages the reset-token lifecycle.
type PasswordResetService struct {
	Users       repository.UserRepository
	Credentials *CredentialService
	Mail        mailer.Queue
	FrontendURL string
	Logger      *logrus.Logger

	// now is swappable in tests.
	now func() time.Time
}

func NewPasswordResetService(users repository.UserRepository, creds *CredentialService, mail mailer.Queue, frontendURL string, logger *logrus.Logger) *PasswordResetService {
	return &PasswordResetService{
		Users:       users,
		Credentials: creds,
		Mail:        mail,
		FrontendURL: frontendURL,
		Logger:      logger,
		now:         time.Now,
	}
}

// RequestReset issues a single-use reset token valid for one hour and
// dispatches the reset link by email. Unknown emails fail ErrNotFound; the
// transport layer decides whether to expose that distinction.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	token, err := helpers.GenerateResetToken()
	if err != nil {
		return err
	}
	expiry := s.now().Add(ResetTokenTTL)
	if err := s.Users.SetResetToken(ctx, u.ID, token, expiry); err != nil {
		return err
	}

	if s.Mail != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: "reset_password",
			Data: map[string]any{
				"Name":     u.Name,
				"ResetURL": s.FrontendURL + "/reset?resetToken=" + token,
				"Expires":  expiry.UTC().Format(time.RFC1123),
			},
		}
		if err := s.Mail.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("queueing reset email failed")
			return err
		}
	}
	s.Logger.WithField("user_id", u.ID).Info("password reset requested")
	return nil
}

// ResetPassword consumes a reset token: the token must match and its expiry
// must still be in the future. The stored token is cleared in the same
// update that writes the new hash, so a token can never be replayed. A fresh
// session is issued for the updated user.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, password, confirmPassword string) (*entity.User, Session, error) {
	if password != confirmPassword {
		return nil, Session{}, ErrPasswordMismatch
	}
	if len(password) < 8 {
		return nil, Session{}, ErrValidation
	}

	u, err := s.Users.GetByResetToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Session{}, ErrInvalidOrExpiredToken
		}
		return nil, Session{}, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, Session{}, err
	}
	if err := s.Users.ResetPassword(ctx, u.ID, hash); err != nil {
		return nil, Session{}, err
	}
	u.Password = hash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil

	sess, err := s.Credentials.issueSession(u.ID)
	if err != nil {
		return nil, Session{}, err
	}
	s.Logger.WithField("user_id", u.ID).Info("password reset completed")
	return u, sess, nil
}
