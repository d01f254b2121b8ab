package httpx

import (
	"errors"
	"net/http"
	"strings"
)

var ErrNoBearer = errors.New("httpx: missing or malformed bearer token")

// BearerToken pulls the token out of an Authorization header value. The
// scheme is matched case-insensitively per RFC 6750.
func BearerToken(authorization string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrNoBearer
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrNoBearer
	}
	return token, nil
}

// SetBearerChallenge adds an RFC 6750 challenge header for invalid tokens.
// The description is intentionally the same for every failure.
func SetBearerChallenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
}
