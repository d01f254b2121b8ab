package domain

import "time"

// Session is an issued bearer credential. Nothing about it is stored
// server-side; it is valid until ExpiresAt.
type Session struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// PendingRegistration is the decoded payload of a registration link. It
// only ever lives in memory between verifying the link and creating the user.
type PendingRegistration struct {
	Email     string
	Password  string
	ExpiresAt time.Time
}

// Identity is attached to a request once its bearer token has been verified
// and the account behind it still exists.
type Identity struct {
	UserID    string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}
