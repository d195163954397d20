package product

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCatalogInvariants(t *testing.T) {
	for _, p := range Catalog {
		if p.MaxPrincipal.LessThanOrEqual(decimal.Zero) {
			t.Errorf("%s: max principal must be positive", p.Code)
		}
		if p.MinRate.IsNegative() {
			t.Errorf("%s: min rate must not be negative", p.Code)
		}
	}
}

func TestFind(t *testing.T) {
	p, err := Find("personal")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if p.Name != "Personal Loan" {
		t.Fatalf("got %q", p.Name)
	}

	_, err = Find("payday")
	if !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("want ErrUnknownProduct, got %v", err)
	}
}

func TestTermSupported(t *testing.T) {
	if !TermSupported(36) {
		t.Error("36 months should be supported")
	}
	if TermSupported(7) {
		t.Error("7 months should not be supported")
	}
}
