package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/mail"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testLoginURL        = "http://accounts.test/login"
	testVerificationURL = "http://accounts.test/v1/registrations"
	testSecret          = "http-test-secret-0123456789abcdef"
)

var linkPattern = regexp.MustCompile(`/v1/registrations/([A-Za-z0-9._~%-]+)`)

type testServer struct {
	router *Router
	store  *sqlite.Store
	outbox *mail.Outbox
	creds  *service.CredentialStore
	tokens *service.TokenService
	logs   *bytes.Buffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "accounts.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens := newTokenService(t, nil)

	creds := &service.CredentialStore{Store: st, Hasher: cryptox.NewBcryptHasher(bcrypt.MinCost)}
	outbox := &mail.Outbox{}

	logs := &bytes.Buffer{}
	logger := slogx.New(slogx.Config{Service: "accounts", Version: "test", Env: "test", Level: "debug", Output: logs})

	r := NewRouter(RouterConfig{BuildVersion: "test", LoginURL: testLoginURL}, st, logger)
	r.Registration = &service.RegistrationService{
		Credentials:     creds,
		Tokens:          tokens,
		Mailer:          outbox,
		VerificationURL: testVerificationURL,
		From:            "noreply@accounts.test",
	}
	r.Sessions = &service.SessionService{Credentials: creds, Tokens: tokens}
	r.Users = &service.UserService{Credentials: creds}
	r.Gate = &service.AuthGate{Tokens: tokens, Credentials: creds}
	r.ApplyRoutes()

	return &testServer{router: r, store: st, outbox: outbox, creds: creds, tokens: tokens, logs: logs}
}

func newTokenService(t *testing.T, now func() time.Time) *service.TokenService {
	t.Helper()

	ts, err := service.NewTokenService(service.TokenConfig{
		Secret:     []byte(testSecret),
		Issuer:     "accounts-test",
		SessionTTL: time.Hour,
		PendingTTL: 10 * time.Minute,
		Now:        now,
	})
	require.NoError(t, err)
	return ts
}

// expiredTokenService signs with a clock two hours behind, so everything it
// issues is already past both TTLs.
func expiredTokenService(t *testing.T) *service.TokenService {
	return newTokenService(t, func() time.Time { return time.Now().Add(-2 * time.Hour) })
}

// do sends body (JSON encoded unless it is a string) with an optional
// bearer token.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register runs the whole registration and returns the new account.
func (s *testServer) register(t *testing.T, email, password string) authsdk.AccountData {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/v1/registrations", "", authsdk.RegistrationRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/v1/registrations/complete", "", authsdk.CompleteRegistrationRequest{Token: s.lastLinkToken(t)})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decodeData[authsdk.AccountData](t, rec)
}

// login returns a session token.
func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/v1/sessions", "", authsdk.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeData[authsdk.SessionData](t, rec).Token
}

func (s *testServer) lastLinkToken(t *testing.T) string {
	t.Helper()

	msg, ok := s.outbox.Last()
	require.True(t, ok, "expected a verification email")

	m := linkPattern.FindStringSubmatch(msg.Text)
	require.Len(t, m, 2)

	token, err := url.PathUnescape(m[1])
	require.NoError(t, err)
	return token
}

type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope[json.RawMessage] {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env envelope[json.RawMessage]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.Equal(t, authsdk.StatusSuccess, env.Status)
	return env.Data
}
