package amortize

import (
	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	twelve       = decimal.NewFromInt(12)
	one          = decimal.NewFromInt(1)
	cents = int32(2)
)

// MonthlyRate converts an annual percentage rate to a periodic monthly rate
// (e.g. 6.0 → 0.005). Kept at full precision; never round this.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(twelve)
}

// MonthlyPayment computes the fixed installment for an amortizing loan using
// the standard annuity formula:
//
//	P * i * (1+i)^n / ((1+i)^n - 1)
//
// Zero-rate loans degrade to straight principal/n. Non-positive principal or
// term yields zero; callers are expected to have rejected those as invalid
// input already.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	if principal.LessThanOrEqual(decimal.Zero) || termMonths <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termMonths))
	i := MonthlyRate(annualRatePercent)
	if i.IsZero() {
		return principal.Div(n)
	}
	growth := one.Add(i).Pow(n) // (1+i)^n
	return principal.Mul(i).Mul(growth).Div(growth.Sub(one))
}

// TotalInterest is payment*n - principal. A negative result for valid inputs
// means the payment was computed wrong; callers should treat it as a defect
// rather than clamping.
func TotalInterest(monthlyPayment decimal.Decimal, termMonths int, principal decimal.Decimal) decimal.Decimal {
	return monthlyPayment.Mul(decimal.NewFromInt(int64(termMonths))).Sub(principal)
}

// Period is one row of a payment schedule preview: how much of the fixed
// installment goes to interest vs. principal reduction for that month.
type Period struct {
	Month     int             `json:"month"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// PreviewSchedule produces up to min(horizonMonths, termMonths) periods of the
// declining-balance split: interest accrues on the remaining balance, the rest
// of the fixed installment retires principal. Display-only; the ledger is the
// authority. Values are rounded to cents per row, with the final period
// absorbing the residual so the balance lands on exactly zero.
func PreviewSchedule(principal, annualRatePercent decimal.Decimal, termMonths, horizonMonths int) []Period {
	if principal.LessThanOrEqual(decimal.Zero) || termMonths <= 0 || horizonMonths <= 0 {
		return nil
	}
	limit := horizonMonths
	if termMonths < limit {
		limit = termMonths
	}

	i := MonthlyRate(annualRatePercent)
	payment := MonthlyPayment(principal, annualRatePercent, termMonths)
	balance := principal

	out := make([]Period, 0, limit)
	for m := 1; m <= limit; m++ {
		interest := balance.Mul(i)
		var principalPart decimal.Decimal
		if m == termMonths {
			// last installment clears whatever is left
			principalPart = balance
		} else {
			principalPart = payment.Sub(interest)
		}
		if principalPart.IsNegative() {
			principalPart = decimal.Zero
		}
		balance = balance.Sub(principalPart)
		out = append(out, Period{
			Month:     m,
			Principal: principalPart.Round(cents),
			Interest:  interest.Round(cents),
			Balance:   balance.Round(cents),
		})
	}
	return out
}
