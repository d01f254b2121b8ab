package jwtx

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and gives you back the claims if it's legit.
// Failures are always a *VerifyError.
type Verifier interface {
	Verify(token string) (*Claims, error)
}
