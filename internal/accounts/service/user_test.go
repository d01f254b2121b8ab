package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.creds.Create(ctx, NewUser{Email: "a@b.com", Password: "Secret1"})
	require.NoError(t, err)

	got, err := f.users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u, got)

	deleted, err := f.users.DeleteAccount(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, deleted.ID)
	require.Equal(t, "a@b.com", deleted.Email)

	_, err = f.users.GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.users.DeleteAccount(ctx, u.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	// The email is free again.
	_, err = f.creds.Create(ctx, NewUser{Email: "a@b.com", Password: "Secret1"})
	require.NoError(t, err)
}
