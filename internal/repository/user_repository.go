package repository

import (
	"context"
)

// UserRepository reads the account table owned by the external auth system.
// This service never writes it.
type UserRepository interface {
	// Exists reports whether an account is registered for the identity.
	// Backs the coordinator's recipient resolution at creation time.
	Exists(ctx context.Context, identity string) (bool, error)
}

type userRepository struct {
	q Querier
}

func NewUserRepository(q Querier) UserRepository {
	return &userRepository{q: q}
}

func (r *userRepository) Exists(ctx context.Context, identity string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	err := r.q.GetContext(ctx, &exists, query, identity)
	return exists, err
}
