package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// HS256 signs and verifies tokens with a single shared HMAC-SHA256 secret.
// It implements both Signer and Verifier.
type HS256 struct {
	secret []byte
	parser *jwt.Parser
}

var (
	_ Signer   = (*HS256)(nil)
	_ Verifier = (*HS256)(nil)
)

// NewHS256 creates a signer/verifier pair over secret. opts apply to Verify.
func NewHS256(secret []byte, opts VerifyOptions) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if len(opts.Audience) > 0 {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience...))
	}
	if opts.Leeway > 0 {
		parserOpts = append(parserOpts, jwt.WithLeeway(opts.Leeway))
	}
	if opts.Now != nil {
		parserOpts = append(parserOpts, jwt.WithTimeFunc(opts.Now))
	}

	// Copy so the caller can't mutate the key under us.
	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256{
		secret: key,
		parser: jwt.NewParser(parserOpts...),
	}, nil
}

func (h *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (h *HS256) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(h.secret)
}

// Verify validates the JWT string and returns its parsed Claims. The
// signature is checked before any claim. A token for the wrong audience or
// issuer reports ReasonInvalidClaims even when it has also expired.
func (h *HS256) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, verifyErr(ReasonMalformed, errors.New("empty token"))
	}

	token, err := h.parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return nil, verifyErr(classify(err), annotate(err))
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, verifyErr(ReasonInvalidClaims, errors.New("unexpected claims type"))
	}

	return claims, nil
}

// classify maps jwt/v5 parse errors onto a Reason. The validator joins every
// failed claim check into one error, so order matters: a token meant for
// someone else is invalid before it is expired.
func classify(err error) Reason {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ReasonMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ReasonInvalidSignature
	case errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ReasonInvalidClaims
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	default:
		return ReasonInvalidClaims
	}
}

// annotate adds the package sentinel for the failed claim, if any.
func annotate(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return fmt.Errorf("%w: %w", ErrAudience, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %w", ErrIssuer, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %w", ErrNotYetValid, err)
	default:
		return err
	}
}
