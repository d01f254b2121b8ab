package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// MsgNotLoggedIn is the single message for every authentication failure.
const MsgNotLoggedIn = "You are not logged in! Please log in to get access."

// APIError is a non-2xx response. The server writes it with WriteError and
// the client gets it back from every call that fails.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Status is always "fail"
	Status string `json:"status"`

	// Message is the human-readable reason
	Message string `json:"message"`

	// Detail is the diagnostic, only for server errors
	Detail string `json:"error,omitempty"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s (%s)", e.StatusCode, e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Status, e.Message)
}

// WriteError writes the error as a Response envelope.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, Response{
		Status:  e.Status,
		Message: e.Message,
		Error:   e.Detail,
	})
}

// Fail builds a 4xx error.
func Fail(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Status: StatusFail, Message: message}
}

// ServerError builds a 5xx error carrying err as the diagnostic.
func ServerError(message string, err error) *APIError {
	e := &APIError{StatusCode: http.StatusInternalServerError, Status: StatusFail, Message: message}
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

// ErrNotLoggedIn is the response for a missing, bad or expired session.
var ErrNotLoggedIn = Fail(http.StatusUnauthorized, MsgNotLoggedIn)

// parseErrorResponse turns a non-2xx response into an *APIError, falling back
// to the status text when the body is not an envelope.
func parseErrorResponse(resp *http.Response, body []byte) error {
	e := &APIError{StatusCode: resp.StatusCode}

	if err := json.Unmarshal(body, e); err != nil || e.Message == "" {
		e.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if e.Status == "" {
		e.Status = StatusFail
	}
	return e
}
