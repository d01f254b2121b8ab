package jwtx

import (
	"errors"
	"fmt"
	"time"
)

// VerifyOptions captures common expectations used by verifiers.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss). Empty means "don't care".
	Issuer string

	// Audience values the token must contain (claims.aud). Empty means "don't care".
	Audience []string

	// Leeway allows small clock skew when validating exp/nbf/iat.
	// Because time sync is never perfect.
	Leeway time.Duration

	// Now overrides the clock used for exp/nbf checks. Tests only.
	Now func() time.Time
}

var (
	ErrEmptySecret = errors.New("jwtx: empty signing secret")

	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Reason says why a token failed verification. Callers switch on it instead
// of inspecting error types.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonMalformed
	ReasonInvalidSignature
	ReasonExpired
	ReasonInvalidClaims
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonMalformed:
		return "malformed"
	case ReasonInvalidSignature:
		return "invalid_signature"
	case ReasonExpired:
		return "expired"
	case ReasonInvalidClaims:
		return "invalid_claims"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// sentinel maps a reason onto the package error it matches with errors.Is.
func (r Reason) sentinel() error {
	switch r {
	case ReasonMalformed:
		return ErrMalformed
	case ReasonInvalidSignature:
		return ErrInvalidSig
	case ReasonExpired:
		return ErrExpired
	case ReasonInvalidClaims:
		return ErrInvalidClaim
	default:
		return nil
	}
}

// VerifyError is returned by every failed verification.
type VerifyError struct {
	Reason Reason
	Err    error
}

func (e *VerifyError) Error() string {
	if e.Err == nil {
		return "jwtx: verify: " + e.Reason.String()
	}
	return fmt.Sprintf("jwtx: verify: %s: %v", e.Reason, e.Err)
}

func (e *VerifyError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrExpired) and friends work off the reason.
func (e *VerifyError) Is(target error) bool {
	s := e.Reason.sentinel()
	return s != nil && target == s
}

// ReasonOf extracts the verification reason from err. Errors that did not
// come from a verifier report ReasonNone.
func ReasonOf(err error) Reason {
	var ve *VerifyError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ReasonNone
}

func verifyErr(r Reason, err error) error {
	return &VerifyError{Reason: r, Err: err}
}
