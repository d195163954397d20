package notify

import "context"

// Kinds of events the engine announces.
const (
	KindLoanSubmitted   = "loan.submitted"
	KindLoanApproved    = "loan.approved"
	KindLoanDeclined    = "loan.declined"
	KindLoanDisbursed   = "loan.disbursed"
	KindPaymentReceived = "loan.payment_received"
	KindLoanPaidOff     = "loan.paid_off"
)

// Notifier is a fire-and-forget collaborator. Implementations must be
// best-effort: a failed notification never fails or rolls back the loan or
// payment operation that produced it.
type Notifier interface {
	Notify(ctx context.Context, userID, kind string, payload map[string]any)
}
