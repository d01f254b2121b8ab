package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	account := s.register(t, "a@b.com", "Secret1")

	rec := s.do(t, http.MethodPost, "/v1/sessions", "", authsdk.LoginRequest{Email: "a@b.com", Password: "Secret1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	data := decodeData[authsdk.SessionData](t, rec)
	require.NotEmpty(t, data.Token)
	require.WithinDuration(t, time.Now().Add(time.Hour), data.ExpiresAt, 5*time.Second)

	claims, err := s.tokens.VerifySession(data.Token)
	require.NoError(t, err)
	require.Equal(t, account.ID, claims.UserID)
}

func TestLogin_Rejections(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "a@b.com", "Secret1")

	wrongPassword := s.do(t, http.MethodPost, "/v1/sessions", "", authsdk.LoginRequest{Email: "a@b.com", Password: "nope"})
	unknownEmail := s.do(t, http.MethodPost, "/v1/sessions", "", authsdk.LoginRequest{Email: "x@b.com", Password: "Secret1"})

	require.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	require.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String(), "responses must not reveal which part was wrong")
	require.Equal(t, "Incorrect email or password", decodeEnvelope(t, wrongPassword).Message)

	for _, body := range []any{
		authsdk.LoginRequest{Email: "a@b.com"},
		authsdk.LoginRequest{Password: "Secret1"},
		authsdk.LoginRequest{},
	} {
		rec := s.do(t, http.MethodPost, "/v1/sessions", "", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "email and password fields are mandatory", decodeEnvelope(t, rec).Message)
	}

	rec := s.do(t, http.MethodPost, "/v1/sessions", "", "not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, msgBadBody, decodeEnvelope(t, rec).Message)
}
