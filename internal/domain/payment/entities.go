package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger precondition failures, in the order the reconciler checks them.
var (
	ErrLoanNotActive     = errors.New("loan is not active")
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
	ErrBelowMinimum      = errors.New("payment amount below fixed installment")
	ErrExceedsBalance    = errors.New("payment amount exceeds remaining balance")
)

type Type string

const (
	TypeRegular Type = "regular"
	// TypeFinal marks the payment that brought the balance to zero.
	TypeFinal Type = "final"
)

// Payment is an immutable repayment record. Corrections are new records;
// rows are never updated or deleted.
type Payment struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	PaymentID       string          `gorm:"size:36;uniqueIndex" json:"payment_id"`
	Reference       string          `gorm:"size:12;index" json:"reference"`
	LoanID          uint64          `gorm:"not null;index" json:"-"`
	LoanReference   string          `gorm:"size:12;index" json:"loan_reference"`
	UserID          string          `gorm:"size:32;index" json:"user_id"`
	SourceAccountID uint64          `gorm:"not null" json:"source_account_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	FundingTxID     string          `gorm:"size:36" json:"funding_tx_id"`
	Type            Type            `gorm:"type:enum('regular','final');default:'regular'" json:"type"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
