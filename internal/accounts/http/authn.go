package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

type identityKey struct{}

// IdentityFromContext returns the identity Authn attached to the request.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

// Authn admits a request only when its Authorization header resolves to an
// existing account. Every rejection looks the same to the caller.
func Authn(gate *service.AuthGate) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, err := gate.Authenticate(ctx, r.Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					httpx.SetBearerChallenge(w)
					authsdk.ErrNotLoggedIn.WriteError(w)
					return
				}
				slogx.FromContext(ctx).Error("authentication failed", "err", err)
				authsdk.ServerError(msgServerFail, err).WriteError(w)
				return
			}

			ctx = context.WithValue(ctx, identityKey{}, id)
			ctx = httpx.WithUserID(ctx, id.UserID)
			ctx = slogx.WithUserID(ctx, id.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
