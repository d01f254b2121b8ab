package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/mail"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// RegistrationService runs the two-phase registration. Nothing is written
// until the emailed link comes back; the pending state lives in the link.
type RegistrationService struct {
	Credentials *CredentialStore
	Tokens      *TokenService
	Mailer      mail.Sender

	// VerificationURL is the base of the emailed link. The token is
	// appended as the final path segment.
	VerificationURL string

	// From is the sender address of verification emails.
	From string
}

// Initiate validates the request, checks the email is free and emails a
// verification link. It returns nothing the caller could use to register
// without reading that email.
func (s *RegistrationService) Initiate(ctx context.Context, email, password string) error {
	l := slogx.FromContext(ctx)

	email = normalizeEmail(email)
	if err := validateStruct(credentialsInput{Email: email, Password: password}); err != nil {
		return err
	}

	_, err := s.Credentials.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrAlreadyRegistered
	case !errors.Is(err, ErrUserNotFound):
		return fmt.Errorf("lookup email: %w", err)
	}

	token, expiresAt, err := s.Tokens.SignPending(email, password)
	if err != nil {
		return err
	}

	msg, err := mail.VerificationMessage(s.From, email, VerificationLink(s.VerificationURL, token), s.Tokens.PendingTTL())
	if err != nil {
		return err
	}

	if err := s.Mailer.Send(ctx, msg); err != nil {
		l.Warn("verification email not sent", slog.Any("err", err))
		return fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}

	l.Info("registration initiated",
		slog.String("token_fp", cryptox.FingerprintToken(token)),
		slog.Time("expires_at", expiresAt),
	)
	return nil
}

// Complete redeems a registration token and creates the account. Expired
// links fail with ErrTokenExpired, anything else unverifiable with
// ErrTokenInvalid. A second redemption of the same link fails with
// ErrAlreadyRegistered or, when it races the first, ErrDuplicateEmail.
func (s *RegistrationService) Complete(ctx context.Context, token string) (domain.User, error) {
	l := slogx.FromContext(ctx).With(slog.String("token_fp", cryptox.FingerprintToken(token)))

	pending, err := s.Tokens.VerifyPending(token)
	if err != nil {
		l.Info("registration token rejected", slog.Any("err", err))
		return domain.User{}, err
	}

	// Hash before the transaction so the write lock isn't held for it.
	hash, err := s.Credentials.HashPassword(pending.Password)
	if err != nil {
		return domain.User{}, err
	}

	var user domain.User
	err = s.Credentials.WithTx(ctx, func(tx *CredentialStore) error {
		_, err := tx.FindByEmail(ctx, pending.Email)
		switch {
		case err == nil:
			return ErrAlreadyRegistered
		case !errors.Is(err, ErrUserNotFound):
			return fmt.Errorf("lookup email: %w", err)
		}

		user, err = tx.Create(ctx, NewUser{Email: pending.Email, PasswordHash: hash})
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("registration completed", slog.String("user_id", user.ID))
	return user, nil
}

// VerificationLink appends token to base as one escaped path segment.
func VerificationLink(base, token string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(token)
}
