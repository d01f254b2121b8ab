package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

// pendingSealInfo binds the pending-payload key to its one purpose.
const pendingSealInfo = "accounts/pending-registration"

// TokenConfig is everything a TokenService needs. The secret is passed in
// here and nowhere else.
type TokenConfig struct {
	Secret     []byte
	Issuer     string
	SessionTTL time.Duration
	PendingTTL time.Duration

	// Now is the signing and verification clock. Defaults to time.Now.
	Now func() time.Time
}

// SessionClaims is what a verified session token says about its bearer.
type SessionClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// TokenService signs and verifies session and pending-registration tokens.
// Both kinds share one secret but carry different audiences, so neither can
// be replayed as the other.
type TokenService struct {
	issuer     string
	sessionTTL time.Duration
	pendingTTL time.Duration
	now        func() time.Time

	session *jwtx.HS256
	pending *jwtx.HS256
	sealer  *cryptox.Sealer
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, jwtx.ErrEmptySecret
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = jwtx.DefaultSessionTTL
	}
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = jwtx.DefaultPendingTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	session, err := jwtx.NewHS256(cfg.Secret, jwtx.VerifyOptions{
		Issuer:   cfg.Issuer,
		Audience: []string{jwtx.AudienceSession},
		Now:      cfg.Now,
	})
	if err != nil {
		return nil, err
	}

	pending, err := jwtx.NewHS256(cfg.Secret, jwtx.VerifyOptions{
		Issuer:   cfg.Issuer,
		Audience: []string{jwtx.AudienceRegistration},
		Now:      cfg.Now,
	})
	if err != nil {
		return nil, err
	}

	sealer, err := cryptox.NewSealer(cfg.Secret, pendingSealInfo)
	if err != nil {
		return nil, err
	}

	return &TokenService{
		issuer:     cfg.Issuer,
		sessionTTL: cfg.SessionTTL,
		pendingTTL: cfg.PendingTTL,
		now:        cfg.Now,
		session:    session,
		pending:    pending,
		sealer:     sealer,
	}, nil
}

// SessionTTL is how long newly signed session tokens last.
func (s *TokenService) SessionTTL() time.Duration { return s.sessionTTL }

// PendingTTL is the verification window of registration links.
func (s *TokenService) PendingTTL() time.Duration { return s.pendingTTL }

// SignSession issues a bearer token for userID.
func (s *TokenService) SignSession(userID string) (domain.Session, error) {
	claims := jwtx.NewClaims(userID, jwtx.AudienceSession, s.issuer, s.sessionTTL, s.now())

	token, err := s.session.Sign(claims)
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign session: %w", err)
	}

	return domain.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: claims.Expiry(),
	}, nil
}

// VerifySession checks a session token. Failures are ErrTokenExpired or
// ErrTokenInvalid, with the jwtx reason kept in the chain.
func (s *TokenService) VerifySession(token string) (SessionClaims, error) {
	claims, err := s.session.Verify(token)
	if err != nil {
		return SessionClaims{}, tokenError(err)
	}
	userID, err := idx.Parse(claims.Subject)
	if err != nil {
		return SessionClaims{}, fmt.Errorf("%w: subject: %w", ErrTokenInvalid, err)
	}

	return SessionClaims{
		UserID:    userID.String(),
		TokenID:   claims.ID,
		ExpiresAt: claims.Expiry(),
	}, nil
}

// SignPending issues a registration link token. The password is sealed with
// the email as associated data, so the token reveals nothing about it and a
// sealed password can't be moved onto another address.
func (s *TokenService) SignPending(email, password string) (string, time.Time, error) {
	sealed, err := s.sealer.SealString(password, email)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("seal pending password: %w", err)
	}

	claims := jwtx.NewClaims(email, jwtx.AudienceRegistration, s.issuer, s.pendingTTL, s.now())
	claims.Email = email
	claims.Sealed = sealed

	token, err := s.pending.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign pending: %w", err)
	}
	return token, claims.Expiry(), nil
}

// VerifyPending decodes a registration link token. An expired but genuine
// token always reports ErrTokenExpired; everything else is ErrTokenInvalid.
func (s *TokenService) VerifyPending(token string) (domain.PendingRegistration, error) {
	claims, err := s.pending.Verify(token)
	if err != nil {
		return domain.PendingRegistration{}, tokenError(err)
	}

	if claims.Email == "" || claims.Sealed == "" || claims.Subject != claims.Email {
		return domain.PendingRegistration{}, fmt.Errorf("%w: incomplete pending payload", ErrTokenInvalid)
	}

	password, err := s.sealer.OpenString(claims.Sealed, claims.Email)
	if err != nil {
		return domain.PendingRegistration{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	return domain.PendingRegistration{
		Email:     claims.Email,
		Password:  password,
		ExpiresAt: claims.Expiry(),
	}, nil
}

// tokenError folds a verification reason into the service taxonomy.
func tokenError(err error) error {
	switch jwtx.ReasonOf(err) {
	case jwtx.ReasonExpired:
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case jwtx.ReasonMalformed, jwtx.ReasonInvalidSignature, jwtx.ReasonInvalidClaims:
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	default:
		return errors.Join(ErrTokenInvalid, err)
	}
}
