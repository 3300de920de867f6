package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cvtoaster-backend/internal/mail"
	"cvtoaster-backend/internal/otp"
	"cvtoaster-backend/internal/shared/telemetry"
)

// Service contains business logic for accounts. Signup is a two-step flow:
// the account is created only after the emailed code is verified, so
// abandoned signups leave nothing behind in the store.
type Service struct {
	Repo   Repo
	Codes  *otp.Store
	Mailer mail.Sender
}

// RequestSignup validates the signup details, parks them with a fresh code
// and emails the code. No user row exists until verification.
func (s *Service) RequestSignup(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || !validEmail(email) || len(password) < 8 {
		return ErrInvalidInput
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	code, err := s.Codes.Issue(email, otp.PurposeSignup, &otp.PendingSignup{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}

	return s.sendCode(email, "Verify your email", code)
}

// VerifySignup consumes the code and creates the account.
func (s *Service) VerifySignup(ctx context.Context, email, code string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	pending, err := s.Codes.Verify(email, otp.PurposeSignup, code)
	if err != nil {
		return User{}, err
	}
	if pending == nil {
		return User{}, otp.ErrInvalidCode
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Username:     pending.Username,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login checks the password against the stored hash.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// RequestPasswordReset emails a reset code when the account exists.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.Repo.GetByEmail(ctx, email); err != nil {
		return err
	}
	code, err := s.Codes.Issue(email, otp.PurposePasswordReset, nil)
	if err != nil {
		return err
	}
	return s.sendCode(email, "Reset your password", code)
}

// ConfirmPasswordReset consumes the reset code and replaces the password.
func (s *Service) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(newPassword) < 8 {
		return ErrInvalidInput
	}
	if _, err := s.Codes.Verify(email, otp.PurposePasswordReset, code); err != nil {
		return err
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, user.ID, string(hash))
}

// UpdateProfile replaces the username.
func (s *Service) UpdateProfile(ctx context.Context, userID, username string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, ErrInvalidInput
	}
	if err := s.Repo.UpdateProfile(ctx, userID, username); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, userID)
}

// Get returns a user by ID.
func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// EnsureOAuthUser returns the account for the given provider identity,
// creating it on first sign-in with a random local password placeholder.
func (s *Service) EnsureOAuthUser(ctx context.Context, email, name string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validEmail(email) {
		return User{}, ErrInvalidInput
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	placeholder := make([]byte, 32)
	if _, err := rand.Read(placeholder); err != nil {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(placeholder)), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	if name == "" {
		name = email[:strings.Index(email, "@")]
	}
	now := time.Now().UTC()
	user = User{
		ID:           "google:" + uuid.NewString(),
		Username:     name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return s.Repo.GetByEmail(ctx, email)
		}
		return User{}, err
	}
	return user, nil
}

func (s *Service) sendCode(email, subject, code string) error {
	body := fmt.Sprintf("<p>Your CV Toaster verification code is <b>%s</b>.</p><p>It expires in %d minutes.</p>",
		code, int(otp.TTL.Minutes()))
	if err := s.Mailer.Send(email, subject, body); err != nil {
		telemetry.Error("mail.send_failed", map[string]any{"error": err.Error()})
		return err
	}
	return nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && strings.Contains(email[at:], ".")
}
