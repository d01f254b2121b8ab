package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation_failed")
	ErrAlreadyRegistered  = errors.New("already_registered")
	ErrDuplicateEmail     = errors.New("duplicate_email")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrTokenExpired       = errors.New("token_expired")
	ErrTokenInvalid       = errors.New("token_invalid")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrIncorrectPassword  = errors.New("incorrect_password")
	ErrMailDelivery       = errors.New("mail_delivery_failed")
)

// ValidationError describes bad or missing input. errors.Is(err,
// ErrValidation) matches it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Reasons used in ValidationError. The HTTP layer keys its messages off them.
const (
	ReasonRequired = "is required"
	ReasonEmail    = "must be a valid email address"
	ReasonTooLong  = "must be at most 72 bytes"
)
