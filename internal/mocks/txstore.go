package mocks

import (
	"context"

	"garasiku/internal/repository"
)

// TxStore is a pass-through repository.TxStore for unit tests: RunInTx
// invokes the closure directly against the provided repositories without any
// real transaction, which keeps the coordinator's in-transaction logic
// observable through ordinary repository mocks.
type TxStore struct {
	R *repository.Repositories
}

func NewTxStore(r *repository.Repositories) *TxStore {
	return &TxStore{R: r}
}

func (s *TxStore) Repos() *repository.Repositories {
	return s.R
}

func (s *TxStore) RunInTx(ctx context.Context, fn func(r *repository.Repositories) error) error {
	return fn(s.R)
}
