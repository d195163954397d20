package account

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint64) (*Account, error)
	// GetByIDForUpdate locks the account row; balance mutations go through it.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Account, error)
	Save(ctx context.Context, a *Account) error
	CreateTransaction(ctx context.Context, tx *FundingTransaction) error
}
