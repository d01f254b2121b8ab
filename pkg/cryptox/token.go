package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// fingerprintChars is how much of the digest FingerprintToken keeps. 16
// base64url characters are 96 bits, plenty to correlate log lines.
const fingerprintChars = 16

// FingerprintToken returns a short, deterministic SHA-256 fingerprint of a
// token. Tokens are bearer credentials (and pending tokens carry sealed
// account data) so they never go into logs verbatim; the fingerprint does.
func FingerprintToken(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:fingerprintChars]
}
