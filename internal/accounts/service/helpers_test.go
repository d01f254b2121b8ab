package service

import (
	"net/url"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/mail"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret          = "test-secret-for-service-tests-0123456789"
	testIssuer          = "accounts-test"
	testVerificationURL = "http://accounts.test/v1/registrations"
	testFrom            = "noreply@accounts.test"
)

var linkPattern = regexp.MustCompile(`/v1/registrations/([A-Za-z0-9._~%-]+)`)

type fixture struct {
	store    *sqlite.Store
	creds    *CredentialStore
	tokens   *TokenService
	outbox   *mail.Outbox
	reg      *RegistrationService
	sessions *SessionService
	users    *UserService
	gate     *AuthGate
}

func newTokenService(t *testing.T, now func() time.Time) *TokenService {
	t.Helper()
	ts, err := NewTokenService(TokenConfig{
		Secret:     []byte(testSecret),
		Issuer:     testIssuer,
		SessionTTL: time.Hour,
		PendingTTL: 10 * time.Minute,
		Now:        now,
	})
	require.NoError(t, err)
	return ts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "accounts.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	creds := &CredentialStore{Store: s, Hasher: cryptox.NewBcryptHasher(bcrypt.MinCost)}
	tokens := newTokenService(t, nil)
	outbox := &mail.Outbox{}

	return &fixture{
		store:  s,
		creds:  creds,
		tokens: tokens,
		outbox: outbox,
		reg: &RegistrationService{
			Credentials:     creds,
			Tokens:          tokens,
			Mailer:          outbox,
			VerificationURL: testVerificationURL,
			From:            testFrom,
		},
		sessions: &SessionService{Credentials: creds, Tokens: tokens},
		users:    &UserService{Credentials: creds},
		gate:     &AuthGate{Tokens: tokens, Credentials: creds},
	}
}

// lastLinkToken pulls the registration token out of the newest email.
func (f *fixture) lastLinkToken(t *testing.T) string {
	t.Helper()

	msg, ok := f.outbox.Last()
	require.True(t, ok, "expected a verification email")

	m := linkPattern.FindStringSubmatch(msg.Text)
	require.Len(t, m, 2, "no verification link in %q", msg.Text)

	token, err := url.PathUnescape(m[1])
	require.NoError(t, err)
	return token
}
