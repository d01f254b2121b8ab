package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the accounts service. It covers the public
// operations and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new accounts service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// InitiateRegistration asks the service to email a verification link.
func (c *SDKClient) InitiateRegistration(ctx context.Context, email, password string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/registrations", "",
		RegistrationRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	_, err = decodeEnvelope[any](resp, http.StatusOK)
	return err
}

// CompleteRegistration redeems the token from a verification link.
func (c *SDKClient) CompleteRegistration(ctx context.Context, token string) (*AccountData, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/registrations/complete", "",
		CompleteRegistrationRequest{Token: token})
	if err != nil {
		return nil, err
	}

	account, err := decodeEnvelope[AccountData](resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Login exchanges email and password for a Session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/sessions", "",
		LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	data, err := decodeEnvelope[SessionData](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return c.NewSession(data.Token, data.ExpiresAt), nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/readyz", "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}
