package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/mail"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/stretchr/testify/require"
)

func TestInitiate_SendsVerificationEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.reg.Initiate(ctx, "a@b.com", "Secret1"))

	msgs := f.outbox.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, testFrom, msgs[0].From)
	require.Equal(t, "a@b.com", msgs[0].To)
	require.Equal(t, mail.VerificationSubject, msgs[0].Subject)
	require.Contains(t, msgs[0].Text, testVerificationURL+"/")
	require.NotContains(t, msgs[0].Text, "Secret1")
	require.NotContains(t, msgs[0].HTML, "Secret1")

	// No account exists until the link is followed.
	_, err := f.creds.FindByEmail(ctx, "a@b.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestInitiate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		field    string
		reason   string
	}{
		{"missing email", "", "Secret1", "email", ReasonRequired},
		{"blank email", "   ", "Secret1", "email", ReasonRequired},
		{"missing password", "a@b.com", "", "password", ReasonRequired},
		{"missing both", "", "", "email", ReasonRequired},
		{"bad email and missing password", "nope", "", "password", ReasonRequired},
		{"no at", "ab.com", "Secret1", "email", ReasonEmail},
		{"no tld", "a@b", "Secret1", "email", ReasonEmail},
		{"spaces inside", "a b@c.com", "Secret1", "email", ReasonEmail},
		{"two ats", "a@b@c.com", "Secret1", "email", ReasonEmail},
		{"password too long", "a@b.com", strings.Repeat("x", 73), "password", ReasonTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.reg.Initiate(ctx, tt.email, tt.password)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tt.field, verr.Field)
			require.Equal(t, tt.reason, verr.Reason)
		})
	}

	require.Empty(t, f.outbox.Messages(), "invalid requests must not send mail")
}

func TestInitiate_TrimsEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.reg.Initiate(ctx, "  a@b.com \n", "Secret1"))
	msg, _ := f.outbox.Last()
	require.Equal(t, "a@b.com", msg.To)

	u, err := f.reg.Complete(ctx, f.lastLinkToken(t))
	require.NoError(t, err)
	require.Equal(t, "a@b.com", u.Email)
}

func TestInitiate_AlreadyRegistered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.creds.Create(ctx, NewUser{Email: "a@b.com", Password: "Secret1"})
	require.NoError(t, err)

	err = f.reg.Initiate(ctx, "a@b.com", "other")
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.Empty(t, f.outbox.Messages())

	// Stored case-sensitively, so another case is a different account.
	require.NoError(t, f.reg.Initiate(ctx, "A@b.com", "other"))
}

func TestInitiate_MailFailureSurfaces(t *testing.T) {
	f := newFixture(t)
	f.outbox.Err = errors.New("relay down")

	err := f.reg.Initiate(context.Background(), "a@b.com", "Secret1")
	require.ErrorIs(t, err, ErrMailDelivery)
	require.ErrorIs(t, err, mail.ErrDelivery)
}

func TestInitiateThenComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.reg.Initiate(ctx, "a@b.com", "Secret1"))

	u, err := f.reg.Complete(ctx, f.lastLinkToken(t))
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "a@b.com", u.Email)
	require.Empty(t, u.PasswordHash, "hash is not part of the default projection")
	require.WithinDuration(t, time.Now(), u.CreatedAt, 5*time.Second)

	stored, err := f.creds.FindByEmail(ctx, "a@b.com", store.WithPasswordHash())
	require.NoError(t, err)
	require.Equal(t, u.ID, stored.ID)
	require.NotEqual(t, "Secret1", stored.PasswordHash)
	require.NotContains(t, stored.PasswordHash, "Secret1")
	require.True(t, f.creds.Hasher.Verify("Secret1", stored.PasswordHash))
}

func TestComplete_Twice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.reg.Initiate(ctx, "a@b.com", "Secret1"))
	token := f.lastLinkToken(t)

	_, err := f.reg.Complete(ctx, token)
	require.NoError(t, err)

	_, err = f.reg.Complete(ctx, token)
	require.True(t, errors.Is(err, ErrAlreadyRegistered) || errors.Is(err, ErrDuplicateEmail), "got %v", err)
}

func TestComplete_TwoInitiatesRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Both pass the pre-check since nothing is stored yet.
	require.NoError(t, f.reg.Initiate(ctx, "a@b.com", "first"))
	first := f.lastLinkToken(t)
	require.NoError(t, f.reg.Initiate(ctx, "a@b.com", "second"))
	second := f.lastLinkToken(t)

	var (
		wg   sync.WaitGroup
		errs [2]error
	)
	for i, tok := range []string{first, second} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.reg.Complete(ctx, tok)
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.True(t, errors.Is(err, ErrAlreadyRegistered) || errors.Is(err, ErrDuplicateEmail), "got %v", err)
	}
	require.Equal(t, 1, ok, "exactly one registration wins")
}

func TestComplete_Expired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Sign with a clock an hour behind so the 10 minute window has passed.
	old := newTokenService(t, func() time.Time { return time.Now().Add(-time.Hour) })
	token, _, err := old.SignPending("a@b.com", "Secret1")
	require.NoError(t, err)

	_, err = f.reg.Complete(ctx, token)
	require.ErrorIs(t, err, ErrTokenExpired)
	require.NotErrorIs(t, err, ErrTokenInvalid)

	_, err = f.creds.FindByEmail(ctx, "a@b.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestComplete_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.reg.Initiate(ctx, "a@b.com", "Secret1"))
	token := f.lastLinkToken(t)

	session, err := f.tokens.SignSession("user-1")
	require.NoError(t, err)

	// A stale session token is the wrong kind first and expired second.
	stale, err := newTokenService(t, func() time.Time { return time.Now().Add(-2 * time.Hour) }).SignSession("user-1")
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"garbage":               "not-a-token",
		"tampered":              token[:len(token)-2] + "xx",
		"session token":         session.Token,
		"expired session token": stale.Token,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.reg.Complete(ctx, tok)
			require.ErrorIs(t, err, ErrTokenInvalid)
			require.NotErrorIs(t, err, ErrTokenExpired)
		})
	}
}

func TestVerificationLink(t *testing.T) {
	require.Equal(t, "http://x/v1/registrations/abc", VerificationLink("http://x/v1/registrations/", "abc"))
	require.Equal(t, "http://x/v1/registrations/a.b-c_d", VerificationLink("http://x/v1/registrations", "a.b-c_d"))
}
