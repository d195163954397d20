package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountDomain "lending-engine/internal/domain/account"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*accountDomain.Account, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out accountDomain.Account
	res := q.First(&out, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, accountDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *AccountRepository) Save(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AccountRepository) CreateTransaction(ctx context.Context, tx *accountDomain.FundingTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}
