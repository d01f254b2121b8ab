package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.creds.Create(ctx, NewUser{Email: "a@b.com", Password: "Secret1"})
	require.NoError(t, err)
	session, err := f.sessions.Login(ctx, "a@b.com", "Secret1")
	require.NoError(t, err)

	for _, header := range []string{
		"Bearer " + session.Token,
		"bearer " + session.Token,
		"Bearer   " + session.Token + " ",
	} {
		id, err := f.gate.Authenticate(ctx, header)
		require.NoError(t, err, header)
		require.Equal(t, u.ID, id.UserID)
		require.Equal(t, "a@b.com", id.Email)
		require.NotEmpty(t, id.TokenID)
		require.WithinDuration(t, session.ExpiresAt, id.ExpiresAt, time.Second)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.creds.Create(ctx, NewUser{Email: "a@b.com", Password: "Secret1"})
	require.NoError(t, err)
	session, err := f.sessions.Login(ctx, "a@b.com", "Secret1")
	require.NoError(t, err)

	expired, err := newTokenService(t, func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		SignSession(session.UserID)
	require.NoError(t, err)

	foreign, err := NewTokenService(TokenConfig{Secret: []byte("another-secret-entirely-0123456789"), Issuer: testIssuer})
	require.NoError(t, err)
	forged, err := foreign.SignSession(session.UserID)
	require.NoError(t, err)

	require.NoError(t, f.reg.Initiate(ctx, "c@d.com", "Secret1"))
	pending := f.lastLinkToken(t)

	tests := map[string]string{
		"empty":           "",
		"no scheme":       session.Token,
		"basic scheme":    "Basic " + session.Token,
		"scheme only":     "Bearer",
		"scheme blank":    "Bearer   ",
		"garbage":         "Bearer not-a-token",
		"tampered":        "Bearer " + session.Token[:len(session.Token)-2] + "xx",
		"expired":         "Bearer " + expired.Token,
		"foreign secret":  "Bearer " + forged.Token,
		"pending token":   "Bearer " + pending,
		"two tokens":      "Bearer " + session.Token + " " + session.Token,
	}

	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := f.gate.Authenticate(ctx, header)
			require.ErrorIs(t, err, ErrUnauthenticated)
			require.Equal(t, ErrUnauthenticated.Error(), err.Error(), "no detail leaks out")
		})
	}
}

func TestAuthenticate_DeletedAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.creds.Create(ctx, NewUser{Email: "a@b.com", Password: "Secret1"})
	require.NoError(t, err)
	session, err := f.sessions.Login(ctx, "a@b.com", "Secret1")
	require.NoError(t, err)

	_, err = f.users.DeleteAccount(ctx, u.ID)
	require.NoError(t, err)

	_, err = f.gate.Authenticate(ctx, "Bearer "+session.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.tokens.SignSession(idx.New().String())
	require.NoError(t, err)

	require.NoError(t, f.store.Close())

	_, err = f.gate.Authenticate(ctx, "Bearer "+session.Token)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_ForeignSubjectNeverHitsStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.tokens.SignSession("user-1")
	require.NoError(t, err)

	require.NoError(t, f.store.Close())

	// A closed store would surface as an internal error; the subject is
	// rejected first.
	_, err = f.gate.Authenticate(ctx, "Bearer "+session.Token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}
