package loan

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrAlreadyApproved   = errors.New("loan already approved")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDeclined  Status = "declined"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// validNext is the whole lifecycle: no transition may skip a state, and
// declined/completed are terminal.
var validNext = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusDeclined},
	StatusApproved: {StatusActive},
	StatusActive:   {StatusCompleted},
}

// CanTransition reports whether moving from s to target is a legal lifecycle
// step.
func (s Status) CanTransition(target Status) bool {
	for _, n := range validNext[s] {
		if n == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further lifecycle or ledger mutation is allowed.
func (s Status) Terminal() bool {
	return s == StatusDeclined || s == StatusCompleted
}

type Application struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	Reference string `gorm:"size:12;uniqueIndex:ux_loans_reference_active" json:"reference"`
	UserID    string `gorm:"size:32;index:idx_loans_user_active" json:"user_id"`

	ProductCode        string              `gorm:"size:16" json:"product_code"`
	RequestedPrincipal decimal.Decimal     `gorm:"type:decimal(18,2)" json:"requested_principal"`
	ApprovedPrincipal  decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"approved_principal"`
	AnnualRatePercent  decimal.Decimal     `gorm:"type:decimal(6,3)" json:"annual_rate_percent"`
	TermMonths         int                 `gorm:"type:smallint" json:"term_months"`

	// Fixed at submission (recomputed once at approval if the approved
	// principal differs); never changes afterwards.
	MonthlyPayment decimal.Decimal `gorm:"type:decimal(18,2)" json:"monthly_payment"`

	BalanceRemaining decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance_remaining"`
	TotalPaid        decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_paid"`
	NextPaymentDate  *time.Time      `json:"next_payment_date"`

	Status        Status `gorm:"type:enum('pending','approved','declined','active','completed');default:'pending'" json:"status"`
	DeclineReason string `gorm:"type:text" json:"decline_reason,omitempty"`

	DestinationAccountID uint64 `json:"destination_account_id"`

	// Opaque borrower application record (personal/employment/financial
	// details, document URLs, consent flags) captured at submission.
	Details json.RawMessage `gorm:"type:json" json:"details,omitempty"`

	SubmittedAt time.Time  `json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at"`
	DisbursedAt *time.Time `json:"disbursed_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Application) TableName() string { return "loans" }

// Principal returns the amount the ledger runs on: the approved principal
// once set, otherwise the requested one.
func (a *Application) Principal() decimal.Decimal {
	if a.ApprovedPrincipal.Valid {
		return a.ApprovedPrincipal.Decimal
	}
	return a.RequestedPrincipal
}

// NextDueDate advances a due date by one calendar month while keeping the
// original day-of-month anchor, clamped to the target month's length
// (Jan 31 → Feb 28 → Mar 31).
func NextDueDate(current time.Time, anchorDay int) time.Time {
	y, m, _ := current.Date()
	firstOfNext := time.Date(y, m+1, 1, 0, 0, 0, 0, current.Location())
	day := anchorDay
	if last := daysIn(firstOfNext.Year(), firstOfNext.Month()); day > last {
		day = last
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day,
		current.Hour(), current.Minute(), current.Second(), 0, current.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
