package account

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient account balance")
)

// Account is the money source/destination the engine debits and credits.
// Ownership, authentication and statement surfaces live with the host.
type Account struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"id"`
	UserID    string          `gorm:"size:32;index" json:"user_id"`
	Number    string          `gorm:"size:20;uniqueIndex" json:"number"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// FundingTransaction is the immutable money-movement row a disbursement or
// payment links to.
type FundingTransaction struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	AccountID uint64          `gorm:"not null;index" json:"account_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Direction Direction       `gorm:"type:enum('debit','credit')" json:"direction"`
	Reference string          `gorm:"size:12;index" json:"reference"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (FundingTransaction) TableName() string { return "funding_transactions" }
