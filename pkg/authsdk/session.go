package authsdk

import (
	"context"
	"net/http"
	"time"
)

// Session is an authenticated handle. It is immutable and safe for
// concurrent use.
type Session struct {
	client    *SDKClient
	token     string
	expiresAt time.Time
}

// NewSession wraps a token obtained elsewhere. A zero expiresAt means
// unknown.
func (c *SDKClient) NewSession(token string, expiresAt time.Time) *Session {
	return &Session{client: c, token: token, expiresAt: expiresAt}
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// ExpiresAt returns when the server stops accepting the token.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Expired reports whether the token is past its expiry by the local clock.
func (s *Session) Expired() bool {
	return !s.expiresAt.IsZero() && !time.Now().Before(s.expiresAt)
}

// Whoami returns the account behind the session.
func (s *Session) Whoami(ctx context.Context) (*AccountData, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/v1/account", s.token, nil)
	if err != nil {
		return nil, err
	}

	account, err := decodeEnvelope[AccountData](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ChangePassword replaces the account password. The session stays valid.
func (s *Session) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	resp, err := s.client.doRequest(ctx, http.MethodPut, "/v1/account/password", s.token,
		ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	if err != nil {
		return err
	}

	_, err = decodeEnvelope[any](resp, http.StatusOK)
	return err
}

// DeleteAccount removes the account. The session is useless afterwards.
func (s *Session) DeleteAccount(ctx context.Context) error {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, "/v1/account", s.token, nil)
	if err != nil {
		return err
	}

	_, err = decodeEnvelope[any](resp, http.StatusOK)
	return err
}
