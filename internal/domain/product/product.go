package product

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrUnknownProduct = errors.New("unknown loan product")

// Product is static catalog configuration, not persisted per user.
// Invariants: MaxPrincipal > 0, MinRate >= 0.
type Product struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	MaxPrincipal decimal.Decimal `json:"max_principal"`
	// MinRate is the quoted annual rate in percent (e.g. 6.0 = 6% APR).
	MinRate decimal.Decimal `json:"min_rate"`
}

// SupportedTerms are the installment terms offered across all products,
// in months.
var SupportedTerms = []int{6, 12, 24, 36, 48, 60}

// Catalog is the set of products a borrower can apply for.
var Catalog = []Product{
	{Code: "personal", Name: "Personal Loan", MaxPrincipal: decimal.NewFromInt(50_000), MinRate: decimal.NewFromFloat(6.0)},
	{Code: "auto", Name: "Auto Loan", MaxPrincipal: decimal.NewFromInt(120_000), MinRate: decimal.NewFromFloat(4.5)},
	{Code: "business", Name: "Business Loan", MaxPrincipal: decimal.NewFromInt(250_000), MinRate: decimal.NewFromFloat(7.25)},
	{Code: "education", Name: "Education Loan", MaxPrincipal: decimal.NewFromInt(80_000), MinRate: decimal.NewFromFloat(3.9)},
}

// Find looks a product up by code.
func Find(code string) (Product, error) {
	for _, p := range Catalog {
		if p.Code == code {
			return p, nil
		}
	}
	return Product{}, ErrUnknownProduct
}

// TermSupported reports whether the term is one of the offered tenors.
func TermSupported(months int) bool {
	for _, t := range SupportedTerms {
		if t == months {
			return true
		}
	}
	return false
}
