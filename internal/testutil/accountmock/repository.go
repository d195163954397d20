package accountmock

import (
	"context"

	domain "lending-engine/internal/domain/account"
)

// Repo is a function-backed mock satisfying account.Repository.
type Repo struct {
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Account, error)
	GetByIDForUpdateFn  func(ctx context.Context, id uint64) (*domain.Account, error)
	SaveFn              func(ctx context.Context, a *domain.Account) error
	CreateTransactionFn func(ctx context.Context, tx *domain.FundingTransaction) error
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Account, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, a *domain.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) CreateTransaction(ctx context.Context, tx *domain.FundingTransaction) error {
	if m.CreateTransactionFn != nil {
		return m.CreateTransactionFn(ctx, tx)
	}
	return nil
}
