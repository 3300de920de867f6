package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// TTL is how long a code stays valid after issue.
const TTL = 10 * time.Minute

var (
	ErrInvalidCode = errors.New("invalid or expired code")
)

// Purpose separates codes issued for different flows so a signup code cannot
// confirm a password reset.
type Purpose string

const (
	PurposeSignup        Purpose = "signup"
	PurposePasswordReset Purpose = "password_reset"
)

// PendingSignup holds the signup details submitted alongside an OTP request,
// applied only after the code is verified.
type PendingSignup struct {
	Username     string
	Email        string
	PasswordHash string
}

type entry struct {
	code      string
	expiresAt time.Time
	signup    *PendingSignup
}

// Store keeps one outstanding code per email and purpose, in memory. Issuing
// a new code supersedes the previous one; codes are consumed on successful
// verification and discarded when found expired.
type Store struct {
	mu  sync.Mutex
	now func() time.Time
	m   map[string]entry
}

// NewStore constructs a Store.
func NewStore() *Store {
	return &Store{now: time.Now, m: make(map[string]entry)}
}

// Issue generates a fresh 6-digit code for the email and purpose. Any
// previous code for the same key is replaced.
func (s *Store) Issue(email string, purpose Purpose, signup *PendingSignup) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key(email, purpose)] = entry{
		code:      code,
		expiresAt: s.now().Add(TTL),
		signup:    signup,
	}
	return code, nil
}

// Verify checks the code for the email and purpose. On success the code is
// consumed and any pending signup payload returned. Expired or mismatched
// codes yield ErrInvalidCode; expired entries are removed.
func (s *Store) Verify(email string, purpose Purpose, code string) (*PendingSignup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(email, purpose)
	e, ok := s.m[k]
	if !ok {
		return nil, ErrInvalidCode
	}
	if s.now().After(e.expiresAt) {
		delete(s.m, k)
		return nil, ErrInvalidCode
	}
	if e.code != code {
		return nil, ErrInvalidCode
	}
	delete(s.m, k)
	return e.signup, nil
}

func key(email string, purpose Purpose) string {
	return string(purpose) + ":" + email
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
