package uow

import (
	"context"

	"lending-engine/internal/domain/account"
	"lending-engine/internal/domain/loan"
	"lending-engine/internal/domain/payment"
)

type Repos struct {
	Loans    loan.Repository
	Payments payment.Repository
	Accounts account.Repository
}

// UnitOfWork commits the repos' writes as one atomic unit. Disbursement and
// payment reconciliation describe several coupled mutations (loan fields,
// account balance, immutable rows); partial commits of that set are a
// critical failure mode, so everything runs inside one of these.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, serializing concurrent
	// mutations of the same loan, then passes it in.
	WithinLoanTx(ctx context.Context, reference string, fn func(r Repos, l *loan.Application) error) error
}
