package sqlite

import (
	"context"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string, opts ...store.ReadOption) (domain.User, error) {
	if store.ResolveReadOptions(opts...).PasswordHash {
		row, err := r.q.GetUserCredentialsByID(ctx, id)
		if err != nil {
			return domain.User{}, mapNotFound(err)
		}
		return mapUser(row), nil
	}

	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(gen.User{ID: row.ID, Email: row.Email, CreatedAt: row.CreatedAt}), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string, opts ...store.ReadOption) (domain.User, error) {
	if store.ResolveReadOptions(opts...).PasswordHash {
		row, err := r.q.GetUserCredentialsByEmail(ctx, email)
		if err != nil {
			return domain.User{}, mapNotFound(err)
		}
		return mapUser(row), nil
	}

	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(gen.User{ID: row.ID, Email: row.Email, CreatedAt: row.CreatedAt}), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	n, err := r.q.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{
		PasswordHash: newHash,
		ID:           userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) (domain.User, error) {
	row, err := r.q.DeleteUser(ctx, userID)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(gen.User{ID: row.ID, Email: row.Email, CreatedAt: row.CreatedAt}), nil
}
