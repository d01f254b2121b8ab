package postgres

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
)

const (
	userColumns            = `id, email, created_at`
	userCredentialsColumns = `id, email, password_hash, created_at`

	createUser = `INSERT INTO users (id, email, password_hash, created_at)
VALUES ($1, $2, $3, $4)`

	updateUserPasswordHash = `UPDATE users SET password_hash = $1 WHERE id = $2`

	deleteUser = `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns
)

type usersRepo struct {
	q querier
}

func (r *usersRepo) get(ctx context.Context, column, value string, opts []store.ReadOption) (domain.User, error) {
	var u domain.User

	if store.ResolveReadOptions(opts...).PasswordHash {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userCredentialsColumns, column)
		err := r.q.QueryRow(ctx, query, value).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
		if err != nil {
			return domain.User{}, mapNotFound(err)
		}
	} else {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)
		err := r.q.QueryRow(ctx, query, value).Scan(&u.ID, &u.Email, &u.CreatedAt)
		if err != nil {
			return domain.User{}, mapNotFound(err)
		}
	}

	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string, opts ...store.ReadOption) (domain.User, error) {
	return r.get(ctx, "id", id, opts)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string, opts ...store.ReadOption) (domain.User, error) {
	return r.get(ctx, "email", email, opts)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.Exec(ctx, createUser, u.ID, u.Email, u.PasswordHash, u.CreatedAt.UTC())
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	tag, err := r.q.Exec(ctx, updateUserPasswordHash, newHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) (domain.User, error) {
	var u domain.User
	if err := r.q.QueryRow(ctx, deleteUser, userID).Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
