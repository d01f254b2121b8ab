package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/idx"
)

// NewUser is the input to CredentialStore.Create. Set Password to have it
// hashed, or PasswordHash when the hash was already computed.
type NewUser struct {
	Email        string
	Password     string
	PasswordHash string
}

// CredentialStore owns the user entity on top of a store.Store. Every write
// that sets a password goes through hashPassword, so plaintext never reaches
// the store.
type CredentialStore struct {
	Store  store.Store
	Hasher cryptox.Hasher

	// Now stamps created_at. Defaults to time.Now.
	Now func() time.Time
}

func (c *CredentialStore) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}

// hashPassword is the single pre-write hook for password fields.
func (c *CredentialStore) hashPassword(password string) (string, error) {
	hash, err := c.Hasher.Hash(password)
	switch {
	case errors.Is(err, cryptox.ErrEmptyPassword):
		return "", &ValidationError{Field: "password", Reason: ReasonRequired}
	case errors.Is(err, cryptox.ErrPasswordTooLong):
		return "", &ValidationError{Field: "password", Reason: ReasonTooLong}
	case err != nil:
		return "", err
	}
	return hash, nil
}

// HashPassword runs the pre-write hook without storing anything, for callers
// that want the slow part done outside a transaction.
func (c *CredentialStore) HashPassword(password string) (string, error) {
	return c.hashPassword(password)
}

// VerifyPassword checks password against the user's stored hash. The user
// must have been read with store.WithPasswordHash.
func (c *CredentialStore) VerifyPassword(u domain.User, password string) bool {
	return c.Hasher.Verify(password, u.PasswordHash)
}

// Equalize spends the same time a failed VerifyPassword would, for lookups
// that found no user.
func (c *CredentialStore) Equalize(password string) {
	if eq, ok := c.Hasher.(interface{ Equalize(string) }); ok {
		eq.Equalize(password)
	}
}

// FindByEmail returns ErrUserNotFound when no user has exactly that email.
func (c *CredentialStore) FindByEmail(ctx context.Context, email string, opts ...store.ReadOption) (domain.User, error) {
	u, err := c.Store.Users().GetUserByEmail(ctx, normalizeEmail(email), opts...)
	if err != nil {
		return domain.User{}, userErr(err)
	}
	return u, nil
}

// FindByID returns ErrUserNotFound when no user has that id.
func (c *CredentialStore) FindByID(ctx context.Context, id string, opts ...store.ReadOption) (domain.User, error) {
	u, err := c.Store.Users().GetUserByID(ctx, id, opts...)
	if err != nil {
		return domain.User{}, userErr(err)
	}
	return u, nil
}

// Create persists a new user. A taken email fails with ErrDuplicateEmail,
// decided by the store's unique constraint rather than a prior read.
func (c *CredentialStore) Create(ctx context.Context, nu NewUser) (domain.User, error) {
	email := normalizeEmail(nu.Email)
	if err := validateStruct(newEmailInput{Email: email}); err != nil {
		return domain.User{}, err
	}

	hash := nu.PasswordHash
	if hash == "" {
		var err error
		if hash, err = c.hashPassword(nu.Password); err != nil {
			return domain.User{}, err
		}
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    c.now().Truncate(time.Microsecond),
	}

	if err := c.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fmt.Errorf("%w: %w", ErrDuplicateEmail, err)
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	// Callers get the default projection, same as a read.
	u.PasswordHash = ""
	return u, nil
}

// UpdatePassword hashes newPassword and stores it.
func (c *CredentialStore) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hash, err := c.hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := c.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return userErr(err)
	}
	return nil
}

// DeleteByID removes the user and returns what was removed.
func (c *CredentialStore) DeleteByID(ctx context.Context, id string) (domain.User, error) {
	u, err := c.Store.Users().DeleteUser(ctx, id)
	if err != nil {
		return domain.User{}, userErr(err)
	}
	return u, nil
}

// WithTx runs fn against a CredentialStore bound to one transaction.
func (c *CredentialStore) WithTx(ctx context.Context, fn func(tx *CredentialStore) error) error {
	return c.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(&CredentialStore{Store: tx, Hasher: c.Hasher, Now: c.Now})
	})
}

func userErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
