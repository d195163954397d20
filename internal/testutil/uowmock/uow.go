package uowmock

import (
	"context"

	"lending-engine/internal/domain/loan"
	"lending-engine/internal/domain/uow"
)

// UoW runs the callback directly against the supplied repos: no real
// transaction, no locking. Tests that care about rollback semantics assert
// on the error and on state the callback never reached instead.
type UoW struct {
	Repos uow.Repos
	// Err, when set, is returned without invoking the callback.
	Err error
}

func (u *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if u.Err != nil {
		return u.Err
	}
	return fn(u.Repos)
}

func (u *UoW) WithinLoanTx(ctx context.Context, reference string, fn func(r uow.Repos, l *loan.Application) error) error {
	if u.Err != nil {
		return u.Err
	}
	l, err := u.Repos.Loans.GetByReferenceForUpdate(ctx, reference)
	if err != nil {
		return err
	}
	return fn(u.Repos, l)
}
