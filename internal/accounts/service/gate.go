package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// AuthGate turns an Authorization header into an Identity. It knows nothing
// about the transport; the HTTP middleware is a thin adapter over it.
type AuthGate struct {
	Tokens      *TokenService
	Credentials *CredentialStore
}

// Authenticate returns the identity behind a bearer token. Every token
// problem, and an account that no longer exists, is ErrUnauthenticated with
// no further detail. Only store failures come back as other errors.
func (g *AuthGate) Authenticate(ctx context.Context, authorization string) (domain.Identity, error) {
	l := slogx.FromContext(ctx)

	raw, err := httpx.BearerToken(authorization)
	if err != nil {
		return domain.Identity{}, ErrUnauthenticated
	}

	claims, err := g.Tokens.VerifySession(raw)
	if err != nil {
		l.Debug("session token rejected", slog.String("reason", jwtx.ReasonOf(err).String()))
		return domain.Identity{}, ErrUnauthenticated
	}

	user, err := g.Credentials.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			l.Info("session token for missing account", slog.String("user_id", claims.UserID))
			return domain.Identity{}, ErrUnauthenticated
		}
		return domain.Identity{}, fmt.Errorf("resolve identity: %w", err)
	}

	return domain.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		TokenID:   claims.TokenID,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}
