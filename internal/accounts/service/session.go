package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

type SessionService struct {
	Credentials *CredentialStore
	Tokens      *TokenService
}

// Login checks email and password and issues a session token. An unknown
// email and a wrong password both fail with ErrInvalidCredentials, after the
// same amount of hashing work.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	email = normalizeEmail(email)
	if email == "" {
		return domain.Session{}, &ValidationError{Field: "email", Reason: ReasonRequired}
	}
	if password == "" {
		return domain.Session{}, &ValidationError{Field: "password", Reason: ReasonRequired}
	}

	user, err := s.Credentials.FindByEmail(ctx, email, store.WithPasswordHash())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.Credentials.Equalize(password)
			l.Info("login failed", slog.String("reason", "unknown_email"))
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, fmt.Errorf("lookup email: %w", err)
	}

	if !s.Credentials.VerifyPassword(user, password) {
		l.Info("login failed", slog.String("reason", "wrong_password"), slog.String("user_id", user.ID))
		return domain.Session{}, ErrInvalidCredentials
	}

	session, err := s.Tokens.SignSession(user.ID)
	if err != nil {
		return domain.Session{}, err
	}

	l.Info("login succeeded", slog.String("user_id", user.ID))
	return session, nil
}

// ChangePassword replaces the password of userID after checking the old
// one. Sessions issued before the change stay valid until they expire.
func (s *SessionService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	l := slogx.FromContext(ctx)

	if err := validateStruct(passwordChangeInput{OldPassword: oldPassword, NewPassword: newPassword}); err != nil {
		return err
	}

	user, err := s.Credentials.FindByID(ctx, userID, store.WithPasswordHash())
	if err != nil {
		return err
	}

	if !s.Credentials.VerifyPassword(user, oldPassword) {
		l.Info("password change rejected", slog.String("reason", "incorrect_old_password"))
		return ErrIncorrectPassword
	}

	if err := s.Credentials.UpdatePassword(ctx, user.ID, newPassword); err != nil {
		return err
	}

	l.Info("password changed")
	return nil
}
