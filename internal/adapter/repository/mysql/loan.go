package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "lending-engine/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, a *loanDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *LoanRepository) Save(ctx context.Context, a *loanDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *LoanRepository) GetByReference(ctx context.Context, reference string) (*loanDomain.Application, error) {
	var out loanDomain.Application
	res := r.db.WithContext(ctx).Where("reference = ?", reference).First(&out)
	return &out, res.Error
}

// GetByReferenceForUpdate takes a row lock (SELECT ... FOR UPDATE); only
// meaningful inside a transaction. SQLite (used by the tests) has no FOR
// UPDATE syntax; its single-writer model serializes writes anyway.
func (r *LoanRepository) GetByReferenceForUpdate(ctx context.Context, reference string) (*loanDomain.Application, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out loanDomain.Application
	res := q.Where("reference = ?", reference).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) GetPendingByUserID(ctx context.Context, userID string) (*loanDomain.Application, error) {
	var out loanDomain.Application
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, loanDomain.StatusPending).
		Order("submitted_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}
