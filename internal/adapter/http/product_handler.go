package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"lending-engine/internal/domain/product"
	"lending-engine/pkg/amortize"
)

type ProductHandler struct{}

func NewProductHandler() *ProductHandler { return &ProductHandler{} }

// ListProducts returns the catalog; with ?principal= and ?term= it also
// quotes the fixed installment at each product's minimum rate.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	rawPrincipal := c.QueryParam("principal")
	rawTerm := c.QueryParam("term")
	if rawPrincipal == "" && rawTerm == "" {
		return c.JSON(http.StatusOK, map[string]any{
			"products":        product.Catalog,
			"supported_terms": product.SupportedTerms,
		})
	}

	principal, err := decimal.NewFromString(rawPrincipal)
	if err != nil || !principal.IsPositive() {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "principal", Message: "must be a positive decimal amount"}},
		})
	}
	term, err := strconv.Atoi(rawTerm)
	if err != nil || !product.TermSupported(term) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "term", Message: "must be a supported term in months"}},
		})
	}

	type quote struct {
		product.Product
		MonthlyPayment decimal.Decimal `json:"monthly_payment"`
		TotalInterest  decimal.Decimal `json:"total_interest"`
	}
	quotes := make([]quote, 0, len(product.Catalog))
	for _, p := range product.Catalog {
		if principal.GreaterThan(p.MaxPrincipal) {
			continue
		}
		pay := amortize.MonthlyPayment(principal, p.MinRate, term).Round(2)
		quotes = append(quotes, quote{
			Product:        p,
			MonthlyPayment: pay,
			TotalInterest:  amortize.TotalInterest(pay, term, principal).Round(2),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"quotes": quotes})
}
