package domain

import "time"

// User is the only persisted entity. A row exists only once a registration
// has been completed.
type User struct {
	ID           string
	Email        string    // unique, stored exactly as entered (after trimming)
	PasswordHash string    // bcrypt encoded; empty unless explicitly requested
	CreatedAt    time.Time // immutable
}

// HasPasswordHash reports whether the credential projection was loaded.
func (u User) HasPasswordHash() bool { return u.PasswordHash != "" }
