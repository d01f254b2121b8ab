package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/postgres"
	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway postgres container and returns a
// migrated store. Skipped with -short since it needs docker.
func setupPostgres(t *testing.T) *postgres.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres driver tests need docker")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "accounts",
			"POSTGRES_PASSWORD": "accounts",
			"POSTGRES_DB":       "accounts",
		},
		// postgres restarts once after init, so wait for the second banner
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://accounts:accounts@%s:%s/accounts?sslmode=disable", host, port.Port())

	s, err := postgres.NewStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations(), "migrations should be idempotent")
	return s
}

func newUser(email string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "$2a$04$abcdefghijklmnopqrstuuM3W4o0n1bx6f6v1q9yq0jQ0t1m1qv5K",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPostgresStore(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	t.Run("create and read with projection", func(t *testing.T) {
		u := newUser("a@b.com")
		require.NoError(t, s.Users().CreateUser(ctx, u))

		got, err := s.Users().GetUserByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Empty(t, got.PasswordHash)
		require.True(t, u.CreatedAt.Equal(got.CreatedAt))

		got, err = s.Users().GetUserByID(ctx, u.ID, store.WithPasswordHash())
		require.NoError(t, err)
		require.Equal(t, u.PasswordHash, got.PasswordHash)

		_, err = s.Users().GetUserByEmail(ctx, "A@B.COM")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		require.NoError(t, s.Users().CreateUser(ctx, newUser("dup@b.com")))
		err := s.Users().CreateUser(ctx, newUser("dup@b.com"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("concurrent create same email", func(t *testing.T) {
		const n = 8
		errs := make([]error, n)

		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = s.WithTx(ctx, func(tx store.Tx) error {
					return tx.Users().CreateUser(ctx, newUser("race@b.com"))
				})
			}()
		}
		wg.Wait()

		var ok int
		for _, err := range errs {
			if err == nil {
				ok++
				continue
			}
			require.ErrorIs(t, err, store.ErrAlreadyExists)
		}
		require.Equal(t, 1, ok)
	})

	t.Run("update password hash", func(t *testing.T) {
		u := newUser("update@b.com")
		require.NoError(t, s.Users().CreateUser(ctx, u))
		require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "new-hash"))

		got, err := s.Users().GetUserByID(ctx, u.ID, store.WithPasswordHash())
		require.NoError(t, err)
		require.Equal(t, "new-hash", got.PasswordHash)

		require.ErrorIs(t, s.Users().UpdatePasswordHash(ctx, idx.New().String(), "x"), store.ErrNotFound)
	})

	t.Run("delete returns removed row", func(t *testing.T) {
		u := newUser("delete@b.com")
		require.NoError(t, s.Users().CreateUser(ctx, u))

		removed, err := s.Users().DeleteUser(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, removed.Email)

		_, err = s.Users().DeleteUser(ctx, u.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		u := newUser("rollback@b.com")
		err := s.WithTx(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Users().CreateUser(ctx, u))
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = s.Users().GetUserByID(ctx, u.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
