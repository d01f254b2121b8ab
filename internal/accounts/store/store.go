package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a Tx can't be used to start another transaction.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id. The password hash is left empty
	// unless WithPasswordHash is passed.
	GetUserByID(ctx context.Context, id string, opts ...ReadOption) (domain.User, error)

	// GetUserByEmail is an exact, case-sensitive match on the stored email.
	GetUserByEmail(ctx context.Context, email string, opts ...ReadOption) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID). A
	// second row with the same email fails with ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash replaces the stored hash. ErrNotFound when no row
	// has that id.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser removes the user and returns the removed row, without the
	// password hash. ErrNotFound when no row has that id.
	DeleteUser(ctx context.Context, userID string) (domain.User, error)
}

// ReadOptions controls the projection of user reads.
type ReadOptions struct {
	PasswordHash bool
}

type ReadOption func(*ReadOptions)

// WithPasswordHash includes the password hash in a read. Only credential
// checks should ask for it.
func WithPasswordHash() ReadOption {
	return func(o *ReadOptions) { o.PasswordHash = true }
}

// ResolveReadOptions folds opts into a ReadOptions value. Drivers call it.
func ResolveReadOptions(opts ...ReadOption) ReadOptions {
	var o ReadOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
