package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newResetFixture(t *testing.T) (*PasswordResetService, *stubUserRepo, *stubMailQueue) {
	t.Helper()
	repo := newStubUserRepo()
	creds := newCredentialService(repo)
	mail := &stubMailQueue{}
	svc := NewPasswordResetService(repo, creds, mail, "https://shop.example.com", testLogger())

	if _, _, err := creds.Signup(context.Background(), "erin@example.com", "originalpass", "Erin"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	return svc, repo, mail
}

func TestPasswordResetService_RequestReset(t *testing.T) {
	svc, repo, mail := newResetFixture(t)

	start := time.Now()
	if err := svc.RequestReset(context.Background(), "Erin@Example.com"); err != nil {
		t.Fatalf("RequestReset returned error: %v", err)
	}

	u, err := repo.GetByEmail(context.Background(), "erin@example.com")
	if err != nil {
		t.Fatalf("user lookup failed: %v", err)
	}
	if u.ResetToken == nil || *u.ResetToken == "" {
		t.Fatalf("expected a stored reset token")
	}
	if len(*u.ResetToken) != 64 {
		t.Fatalf("token should be 32 random bytes hex encoded, got length %d", len(*u.ResetToken))
	}
	if u.ResetTokenExpiry == nil {
		t.Fatalf("expected a stored expiry")
	}
	if got := u.ResetTokenExpiry.Sub(start); got < 59*time.Minute || got > 61*time.Minute {
		t.Fatalf("expiry should be one hour out, got %v", got)
	}

	if len(mail.jobs) != 1 {
		t.Fatalf("expected 1 queued email, got %d", len(mail.jobs))
	}
	job := mail.jobs[0]
	if job.To != "erin@example.com" || job.Template != "reset_password" {
		t.Fatalf("unexpected job: %+v", job)
	}
	url, _ := job.Data["ResetURL"].(string)
	if !strings.Contains(url, "resetToken="+*u.ResetToken) {
		t.Fatalf("reset url %q does not carry the token", url)
	}
}

func TestPasswordResetService_RequestReset_UnknownEmail(t *testing.T) {
	svc, _, mail := newResetFixture(t)

	if err := svc.RequestReset(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(mail.jobs) != 0 {
		t.Fatalf("no email should be queued for unknown addresses")
	}
}

func TestPasswordResetService_ResetPassword(t *testing.T) {
	svc, repo, _ := newResetFixture(t)

	if err := svc.RequestReset(context.Background(), "erin@example.com"); err != nil {
		t.Fatalf("RequestReset failed: %v", err)
	}
	u, _ := repo.GetByEmail(context.Background(), "erin@example.com")
	token := *u.ResetToken

	updated, sess, err := svc.ResetPassword(context.Background(), token, "brandnewpass", "brandnewpass")
	if err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("brandnewpass")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
	if updated.ResetToken != nil || updated.ResetTokenExpiry != nil {
		t.Fatalf("token should be cleared on use")
	}
	if sess.Token == "" {
		t.Fatalf("expected a fresh session")
	}

	// Single use: the same token cannot be replayed.
	if _, _, err := svc.ResetPassword(context.Background(), token, "anotherpass1", "anotherpass1"); !errors.Is(err, ErrInvalidOrExpiredToken) {
		t.Fatalf("expected ErrInvalidOrExpiredToken on replay, got %v", err)
	}
}

func TestPasswordResetService_ResetPassword_Mismatch(t *testing.T) {
	svc, _, _ := newResetFixture(t)

	if _, _, err := svc.ResetPassword(context.Background(), "whatever", "newpassword", "different"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestPasswordResetService_ResetPassword_ShortPassword(t *testing.T) {
	svc, _, _ := newResetFixture(t)

	if _, _, err := svc.ResetPassword(context.Background(), "whatever", "short", "short"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPasswordResetService_ResetPassword_UnknownToken(t *testing.T) {
	svc, _, _ := newResetFixture(t)

	if _, _, err := svc.ResetPassword(context.Background(), "deadbeef", "brandnewpass", "brandnewpass"); !errors.Is(err, ErrInvalidOrExpiredToken) {
		t.Fatalf("expected ErrInvalidOrExpiredToken, got %v", err)
	}
}

func TestPasswordResetService_ResetPassword_ExpiredToken(t *testing.T) {
	svc, repo, _ := newResetFixture(t)

	if err := svc.RequestReset(context.Background(), "erin@example.com"); err != nil {
		t.Fatalf("RequestReset failed: %v", err)
	}
	u, _ := repo.GetByEmail(context.Background(), "erin@example.com")
	token := *u.ResetToken

	// Jump past the expiry: the window is measured from token creation.
	svc.now = func() time.Time { return time.Now().Add(ResetTokenTTL + time.Minute) }

	if _, _, err := svc.ResetPassword(context.Background(), token, "brandnewpass", "brandnewpass"); !errors.Is(err, ErrInvalidOrExpiredToken) {
		t.Fatalf("expected ErrInvalidOrExpiredToken, got %v", err)
	}
}
