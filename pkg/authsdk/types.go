package authsdk

import "time"

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	// Status is "success" or "fail"
	Status string `json:"status"`

	// Message is a human-readable summary
	Message string `json:"message"`

	// Data is the payload, null when there is none
	Data any `json:"data"`

	// Error is a diagnostic, only set for server errors
	Error string `json:"error,omitempty"`
}

// envelope is Response with a typed payload, for decoding on the client.
type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// ============================================================================
// Registration Types
// ============================================================================

// RegistrationRequest starts a registration. POST /v1/registrations
type RegistrationRequest struct {
	Email    string `json:"email" example:"a@b.com"`
	Password string `json:"password" example:"Secret1"`
}

// CompleteRegistrationRequest redeems the emailed token.
// POST /v1/registrations/complete
type CompleteRegistrationRequest struct {
	Token string `json:"token"`
}

// ============================================================================
// Session Types
// ============================================================================

// LoginRequest is the body of POST /v1/sessions.
type LoginRequest struct {
	Email    string `json:"email" example:"a@b.com"`
	Password string `json:"password" example:"Secret1"`
}

// SessionData is the payload of a successful login.
type SessionData struct {
	// Token is the session token, sent back as "Authorization: Bearer {token}"
	Token string `json:"token"`

	// ExpiresAt is when the token stops being accepted (RFC3339)
	ExpiresAt time.Time `json:"expires_at"`
}

// ============================================================================
// Account Types
// ============================================================================

// AccountData describes a user account. It never includes the password hash.
type AccountData struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ChangePasswordRequest is the body of PUT /v1/account/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
