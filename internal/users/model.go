package users

import "time"

// User is a registered account. OAuth-created users carry a random password
// hash placeholder; they sign in through the provider, never with a password.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
