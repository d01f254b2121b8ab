package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

type UserService struct {
	Credentials *CredentialStore
}

// GetUserByID fetches a user by id, without the password hash.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Credentials.FindByID(ctx, userID)
}

// DeleteAccount removes the user. ErrUserNotFound when it is already gone.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Credentials.DeleteByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("account deleted", slog.String("user_id", u.ID))
	return u, nil
}
