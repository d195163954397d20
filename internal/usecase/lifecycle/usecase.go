package lifecycle

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
	"lending-engine/internal/domain/product"
	"lending-engine/internal/domain/uow"
	"lending-engine/pkg/amortize"
	"lending-engine/pkg/refnum"
)

// createAttempts bounds reference-number regeneration on unique-index
// collisions (900k combinations, so one retry almost always suffices).
const createAttempts = 3

type Usecase struct {
	loans    loan.Repository
	uow      uow.UnitOfWork
	notifier notify.Notifier
}

func NewUsecase(loans loan.Repository, tx uow.UnitOfWork, n notify.Notifier) *Usecase {
	return &Usecase{loans: loans, uow: tx, notifier: n}
}

// Submit validates the application, fixes the installment amount for the
// life of the loan, and records it as pending.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*ApplicationDTO, error) {
	if in.UserID == "" {
		return nil, invalid("user_id", "is required")
	}
	prod, err := product.Find(in.ProductCode)
	if err != nil {
		return nil, invalid("product_code", "unknown loan product")
	}
	if in.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, invalid("principal", "must be positive")
	}
	if in.Principal.GreaterThan(prod.MaxPrincipal) {
		return nil, invalid("principal", "exceeds product maximum of "+prod.MaxPrincipal.StringFixed(2))
	}
	if !product.TermSupported(in.TermMonths) {
		return nil, invalid("term_months", "unsupported term")
	}
	if !in.ConsentTerms || !in.ConsentDataSharing {
		return nil, invalid("consents", "all consents must be granted")
	}
	if !in.IdentityVerified {
		return nil, invalid("identity_verified", "identity verification is required")
	}
	if in.DestinationAccountID == 0 {
		return nil, invalid("destination_account_id", "a destination account must be selected")
	}

	// One open application per borrower at a time.
	pending, err := u.loans.GetPendingByUserID(ctx, in.UserID)
	switch {
	case err == nil:
		return nil, invalid("user_id", "already has a pending application: "+pending.Reference)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	l := &loan.Application{
		UserID:               in.UserID,
		ProductCode:          prod.Code,
		RequestedPrincipal:   in.Principal.Round(2),
		AnnualRatePercent:    prod.MinRate,
		TermMonths:           in.TermMonths,
		MonthlyPayment:       amortize.MonthlyPayment(in.Principal, prod.MinRate, in.TermMonths).Round(2),
		BalanceRemaining:     decimal.Zero,
		TotalPaid:            decimal.Zero,
		Status:               loan.StatusPending,
		DestinationAccountID: in.DestinationAccountID,
		Details:              in.Details,
		SubmittedAt:          time.Now().UTC(),
	}

	for attempt := 0; ; attempt++ {
		l.Reference = refnum.New()
		err = u.loans.Create(ctx, l)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < createAttempts-1 {
			continue
		}
		return nil, err
	}

	u.notifier.Notify(ctx, l.UserID, notify.KindLoanSubmitted, map[string]any{
		"reference": l.Reference,
		"principal": l.RequestedPrincipal,
	})
	return toDTO(l), nil
}

// Approve moves a pending application to approved. The approved principal may
// differ from the requested one; if it does, the installment is recomputed
// once, here, and never again.
func (u *Usecase) Approve(ctx context.Context, reference string, approvedPrincipal decimal.Decimal) (*ApplicationDTO, error) {
	prodMax := func(code string) (decimal.Decimal, error) {
		p, err := product.Find(code)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return p.MaxPrincipal, nil
	}

	var dto *ApplicationDTO
	err := u.uow.WithinLoanTx(ctx, reference, func(r uow.Repos, l *loan.Application) error {
		if l.Status != loan.StatusPending {
			if l.Status == loan.StatusApproved {
				return loan.ErrAlreadyApproved
			}
			return loan.ErrInvalidTransition
		}
		max, err := prodMax(l.ProductCode)
		if err != nil {
			return err
		}
		if approvedPrincipal.LessThanOrEqual(decimal.Zero) {
			return invalid("approved_principal", "must be positive")
		}
		if approvedPrincipal.GreaterThan(max) {
			return invalid("approved_principal", "exceeds product maximum of "+max.StringFixed(2))
		}

		approvedPrincipal = approvedPrincipal.Round(2)
		l.ApprovedPrincipal = decimal.NullDecimal{Decimal: approvedPrincipal, Valid: true}
		if !approvedPrincipal.Equal(l.RequestedPrincipal) {
			l.MonthlyPayment = amortize.MonthlyPayment(approvedPrincipal, l.AnnualRatePercent, l.TermMonths).Round(2)
		}
		now := time.Now().UTC()
		l.ApprovedAt = &now
		l.Status = loan.StatusApproved
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, dto.UserID, notify.KindLoanApproved, map[string]any{
		"reference": dto.Reference,
		"principal": dto.ApprovedPrincipal,
	})
	return dto, nil
}

// Decline is terminal: the application records the reason and no further
// lifecycle or ledger mutation is permitted.
func (u *Usecase) Decline(ctx context.Context, reference, reason string) (*ApplicationDTO, error) {
	if reason == "" {
		return nil, invalid("reason", "is required")
	}

	var dto *ApplicationDTO
	err := u.uow.WithinLoanTx(ctx, reference, func(r uow.Repos, l *loan.Application) error {
		if l.Status != loan.StatusPending {
			return loan.ErrInvalidTransition
		}
		l.DeclineReason = reason
		l.Status = loan.StatusDeclined
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, dto.UserID, notify.KindLoanDeclined, map[string]any{
		"reference": dto.Reference,
		"reason":    reason,
	})
	return dto, nil
}

// Disburse releases the approved funds to the destination account and opens
// the repayment ledger. The account credit, the funding-transaction row and
// the loan mutation commit as one unit.
func (u *Usecase) Disburse(ctx context.Context, reference string) (*ApplicationDTO, error) {
	var dto *ApplicationDTO
	err := u.uow.WithinLoanTx(ctx, reference, func(r uow.Repos, l *loan.Application) error {
		if l.Status != loan.StatusApproved {
			return loan.ErrInvalidTransition
		}
		if l.DestinationAccountID == 0 {
			return invalid("destination_account_id", "a destination account must be selected")
		}

		principal := l.Principal().Round(2)

		dst, err := r.Accounts.GetByIDForUpdate(ctx, l.DestinationAccountID)
		if err != nil {
			return err
		}
		dst.Balance = dst.Balance.Add(principal).Round(2)
		if err := r.Accounts.Save(ctx, dst); err != nil {
			return err
		}
		if err := r.Accounts.CreateTransaction(ctx, &account.FundingTransaction{
			ID:        uuid.NewString(),
			AccountID: dst.ID,
			Amount:    principal,
			Direction: account.DirectionCredit,
			Reference: l.Reference,
		}); err != nil {
			return err
		}

		now := time.Now().UTC()
		due := loan.NextDueDate(now, now.Day())
		l.DisbursedAt = &now
		l.BalanceRemaining = principal
		l.TotalPaid = decimal.Zero
		l.NextPaymentDate = &due
		l.Status = loan.StatusActive
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, dto.UserID, notify.KindLoanDisbursed, map[string]any{
		"reference": dto.Reference,
		"amount":    dto.BalanceRemaining,
	})
	return dto, nil
}

// Get fetches an application by reference number.
func (u *Usecase) Get(ctx context.Context, reference string) (*ApplicationDTO, error) {
	l, err := u.loans.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}
