package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lending-engine/internal/domain/account"
	"lending-engine/internal/domain/loan"
	"lending-engine/internal/domain/notify"
	"lending-engine/internal/domain/payment"
	"lending-engine/internal/domain/uow"
	"lending-engine/pkg/refnum"
)

// PaymentDTO is the immutable record returned to the caller; rows are never
// amended afterwards.
type PaymentDTO struct {
	PaymentID       string          `json:"payment_id"`
	Reference       string          `json:"reference"`
	LoanReference   string          `json:"loan_reference"`
	Amount          decimal.Decimal `json:"amount"`
	Type            payment.Type    `json:"type"`
	SourceAccountID uint64          `json:"source_account_id"`
	FundingTxID     string          `json:"funding_tx_id"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Result tells the caller what the payment did to the ledger, and whether it
// closed the loan (so the host can pick "payment received" vs "paid off"
// messaging).
type Result struct {
	LoanReference    string          `json:"loan_reference"`
	BalanceRemaining decimal.Decimal `json:"balance_remaining"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	NextPaymentDate  *time.Time      `json:"next_payment_date,omitempty"`
	Status           string          `json:"status"`
	Payment          PaymentDTO      `json:"payment"`
	Completed        bool            `json:"completed"`
}

type Usecase struct {
	loans    loan.Repository
	payments payment.Repository
	uow      uow.UnitOfWork
	notifier notify.Notifier
}

func NewUsecase(loans loan.Repository, payments payment.Repository, tx uow.UnitOfWork, n notify.Notifier) *Usecase {
	return &Usecase{loans: loans, payments: payments, uow: tx, notifier: n}
}

// ApplyPayment reconciles one payment event against the loan's ledger.
//
// Preconditions, first failure wins: the loan is active, the amount is
// positive, at least the fixed installment, and no more than the remaining
// balance. The source-account debit, the funding-transaction row, the payment
// row and the loan mutation commit atomically; any failure leaves every field
// untouched. Paying the balance to zero completes the loan and flags the
// payment as final.
func (u *Usecase) ApplyPayment(ctx context.Context, reference string, amount decimal.Decimal, sourceAccountID uint64) (*Result, error) {
	var (
		res    *Result
		userID string
	)
	err := u.uow.WithinLoanTx(ctx, reference, func(r uow.Repos, l *loan.Application) error {
		if l.Status != loan.StatusActive {
			return payment.ErrLoanNotActive
		}
		if !amount.IsPositive() {
			return payment.ErrNonPositiveAmount
		}
		if amount.LessThan(l.MonthlyPayment) {
			return payment.ErrBelowMinimum
		}
		if amount.GreaterThan(l.BalanceRemaining) {
			return payment.ErrExceedsBalance
		}

		src, err := r.Accounts.GetByIDForUpdate(ctx, sourceAccountID)
		if err != nil {
			return err
		}
		if src.Balance.LessThan(amount) {
			return account.ErrInsufficientFunds
		}
		src.Balance = src.Balance.Sub(amount).Round(2)
		if err := r.Accounts.Save(ctx, src); err != nil {
			return err
		}
		fundingTx := &account.FundingTransaction{
			ID:        uuid.NewString(),
			AccountID: src.ID,
			Amount:    amount,
			Direction: account.DirectionDebit,
			Reference: l.Reference,
		}
		if err := r.Accounts.CreateTransaction(ctx, fundingTx); err != nil {
			return err
		}

		// Round once per field, at the point of mutation, so drift cannot
		// accumulate across many payments.
		newBalance := l.BalanceRemaining.Sub(amount).Round(2)
		l.TotalPaid = l.TotalPaid.Add(amount).Round(2)

		p := &payment.Payment{
			PaymentID:       uuid.NewString(),
			Reference:       refnum.New(),
			LoanID:          l.ID,
			LoanReference:   l.Reference,
			UserID:          l.UserID,
			SourceAccountID: src.ID,
			Amount:          amount.Round(2),
			FundingTxID:     fundingTx.ID,
			Type:            payment.TypeRegular,
		}

		if newBalance.LessThanOrEqual(decimal.Zero) {
			newBalance = decimal.Zero
			p.Type = payment.TypeFinal
			now := time.Now().UTC()
			l.CompletedAt = &now
			l.Status = loan.StatusCompleted
			// the loan is terminal; the due date no longer advances
		} else if l.NextPaymentDate != nil {
			anchor := l.NextPaymentDate.Day()
			if l.DisbursedAt != nil {
				anchor = l.DisbursedAt.Day()
			}
			due := loan.NextDueDate(*l.NextPaymentDate, anchor)
			l.NextPaymentDate = &due
		}
		l.BalanceRemaining = newBalance

		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		userID = l.UserID
		res = &Result{
			LoanReference:    l.Reference,
			BalanceRemaining: l.BalanceRemaining,
			TotalPaid:        l.TotalPaid,
			NextPaymentDate:  l.NextPaymentDate,
			Status:           string(l.Status),
			Completed:        l.Status == loan.StatusCompleted,
			Payment: PaymentDTO{
				PaymentID:       p.PaymentID,
				Reference:       p.Reference,
				LoanReference:   p.LoanReference,
				Amount:          p.Amount,
				Type:            p.Type,
				SourceAccountID: p.SourceAccountID,
				FundingTxID:     p.FundingTxID,
				CreatedAt:       p.CreatedAt,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	kind := notify.KindPaymentReceived
	if res.Completed {
		kind = notify.KindLoanPaidOff
	}
	u.notifier.Notify(ctx, userID, kind, map[string]any{
		"loan_reference":    res.LoanReference,
		"payment_reference": res.Payment.Reference,
		"amount":            res.Payment.Amount,
		"balance_remaining": res.BalanceRemaining,
	})
	return res, nil
}

// History returns the loan's payment records, newest first.
func (u *Usecase) History(ctx context.Context, reference string) ([]PaymentDTO, error) {
	l, err := u.loans.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	rows, err := u.payments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, PaymentDTO{
			PaymentID:       p.PaymentID,
			Reference:       p.Reference,
			LoanReference:   p.LoanReference,
			Amount:          p.Amount,
			Type:            p.Type,
			SourceAccountID: p.SourceAccountID,
			FundingTxID:     p.FundingTxID,
			CreatedAt:       p.CreatedAt,
		})
	}
	return out, nil
}
