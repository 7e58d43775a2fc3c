package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Querier is the subset of sqlx used by the repositories. Both *sqlx.DB and
// *sqlx.Tx satisfy it, so the same repository code runs standalone or inside
// a transaction scope.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type Repositories struct {
	User         UserRepository
	Vehicle      VehicleRepository
	Transfer     TransferRepository
	TransferLog  TransferLogRepository
	Notification NotificationRepository
}

func NewRepositories(q Querier) *Repositories {
	return &Repositories{
		User:         NewUserRepository(q),
		Vehicle:      NewVehicleRepository(q),
		Transfer:     NewTransferRepository(q),
		TransferLog:  NewTransferLogRepository(q),
		Notification: NewNotificationRepository(q),
	}
}

// TxStore is the storage surface services depend on: plain repository access
// plus an all-or-nothing transaction boundary. Every state transition that
// touches more than one entity must go through RunInTx.
type TxStore interface {
	Repos() *Repositories
	RunInTx(ctx context.Context, fn func(r *Repositories) error) error
}

// Store implements TxStore over Postgres.
type Store struct {
	db    *sqlx.DB
	repos *Repositories
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:    db,
		repos: NewRepositories(db),
	}
}

func (s *Store) Repos() *Repositories {
	return s.repos
}
