package cryptox

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost is the work factor used when a hasher is built
	// without an explicit cost.
	DefaultBcryptCost = 12

	// MaxPasswordBytes is the longest input bcrypt accepts. Anything past
	// this would be silently truncated by other implementations, so we
	// reject it outright.
	MaxPasswordBytes = 72
)

var (
	ErrEmptyPassword   = errors.New("cryptox: empty password")
	ErrPasswordTooLong = errors.New("cryptox: password exceeds 72 bytes")
)

// Hasher turns plaintext passwords into stored hashes and checks candidates
// against them.
type Hasher interface {
	// Hash returns a salted one-way hash of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches encodedHash. It never fails on
	// a malformed hash, it just says no.
	Verify(password, encodedHash string) bool
}

// BcryptHasher implements Hasher with bcrypt. The zero value is usable and
// hashes at DefaultBcryptCost.
type BcryptHasher struct {
	Cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewBcryptHasher returns a hasher using cost, clamped to bcrypt's limits.
func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) cost() int {
	switch {
	case h.Cost == 0:
		return DefaultBcryptCost
	case h.Cost < bcrypt.MinCost:
		return bcrypt.MinCost
	case h.Cost > bcrypt.MaxCost:
		return bcrypt.MaxCost
	default:
		return h.Cost
	}
}

// Hash generates a bcrypt hash. Every call uses a fresh random salt, so two
// hashes of the same password never compare equal.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost())
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares password against a bcrypt hash. bcrypt does the final
// comparison with subtle.ConstantTimeCompare.
func (h *BcryptHasher) Verify(password, encodedHash string) bool {
	if encodedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}

// Equalize burns one comparison against a throwaway hash of the same cost.
// Call it on paths that would otherwise skip hashing (unknown account) so
// response times do not reveal which branch ran.
func (h *BcryptHasher) Equalize(password string) {
	h.dummyOnce.Do(func() {
		// Error only possible on a bad cost, which cost() already clamps.
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("equalize-timing"), h.cost())
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
