package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Audiences separate the two token kinds. A token minted for one audience is
// rejected by a verifier expecting the other.
const (
	AudienceSession      = "session"
	AudienceRegistration = "registration"
)

const (
	// DefaultSessionTTL is how long a session token stays valid when the
	// service does not configure one.
	DefaultSessionTTL = 24 * time.Hour

	// DefaultPendingTTL is the verification window of a registration link.
	DefaultPendingTTL = 10 * time.Minute
)

// Claims are the token claims shared by session and pending-registration
// tokens. Session tokens only use the registered claims; Email and Sealed are
// set on pending-registration tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Email being registered. Mirrors the subject so clients can read it
	// without knowing the convention.
	Email string `json:"email,omitempty"`

	// Sealed is the encrypted password of a pending registration. It is
	// opaque to anything that does not hold the signing secret.
	Sealed string `json:"pwd,omitempty"`
}

// NewClaims builds minimally-correct claims for one audience.
func NewClaims(subject, audience, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
	}
}

// NewJTI returns a random identifier for the "jti" claim.
func NewJTI() string {
	return uuid.NewString()
}

// Expiry returns the exp claim, or the zero time when absent.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
