package domain

import "time"

// User is an account created through the registration gate. The wider
// application owns the full user profile; this service only records what
// it needs to enforce one-account-per-email.
type User struct {
	ID           string
	Email        string // lower-cased, trimmed
	PasswordHash string // argon2id PHC string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
