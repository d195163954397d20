package lifecycle

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"lending-engine/internal/domain/loan"
)

// ValidationError is a recoverable submit-time failure naming the offending
// field; the caller corrects the input and resubmits.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

type SubmitInput struct {
	UserID               string
	ProductCode          string
	Principal            decimal.Decimal
	TermMonths           int
	DestinationAccountID uint64

	// Consent and identity gates collected by the host's intake flow.
	ConsentTerms       bool
	ConsentDataSharing bool
	IdentityVerified   bool

	// Opaque borrower record: personal/employment/financial details and
	// uploaded document URLs. Stored as-is, immutable after submission.
	Details json.RawMessage
}

type ApplicationDTO struct {
	Reference            string           `json:"reference"`
	UserID               string           `json:"user_id"`
	ProductCode          string           `json:"product_code"`
	RequestedPrincipal   decimal.Decimal  `json:"requested_principal"`
	ApprovedPrincipal    *decimal.Decimal `json:"approved_principal,omitempty"`
	AnnualRatePercent    decimal.Decimal  `json:"annual_rate_percent"`
	TermMonths           int              `json:"term_months"`
	MonthlyPayment       decimal.Decimal  `json:"monthly_payment"`
	BalanceRemaining     decimal.Decimal  `json:"balance_remaining"`
	TotalPaid            decimal.Decimal  `json:"total_paid"`
	NextPaymentDate      *time.Time       `json:"next_payment_date,omitempty"`
	Status               string           `json:"status"`
	DeclineReason        string           `json:"decline_reason,omitempty"`
	DestinationAccountID uint64           `json:"destination_account_id"`
	SubmittedAt          time.Time        `json:"submitted_at"`
	ApprovedAt           *time.Time       `json:"approved_at,omitempty"`
	DisbursedAt          *time.Time       `json:"disbursed_at,omitempty"`
	CompletedAt          *time.Time       `json:"completed_at,omitempty"`
}

func toDTO(l *loan.Application) *ApplicationDTO {
	dto := &ApplicationDTO{
		Reference:            l.Reference,
		UserID:               l.UserID,
		ProductCode:          l.ProductCode,
		RequestedPrincipal:   l.RequestedPrincipal,
		AnnualRatePercent:    l.AnnualRatePercent,
		TermMonths:           l.TermMonths,
		MonthlyPayment:       l.MonthlyPayment,
		BalanceRemaining:     l.BalanceRemaining,
		TotalPaid:            l.TotalPaid,
		NextPaymentDate:      l.NextPaymentDate,
		Status:               string(l.Status),
		DeclineReason:        l.DeclineReason,
		DestinationAccountID: l.DestinationAccountID,
		SubmittedAt:          l.SubmittedAt,
		ApprovedAt:           l.ApprovedAt,
		DisbursedAt:          l.DisbursedAt,
		CompletedAt:          l.CompletedAt,
	}
	if l.ApprovedPrincipal.Valid {
		v := l.ApprovedPrincipal.Decimal
		dto.ApprovedPrincipal = &v
	}
	return dto
}
