package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"lending-engine/internal/usecase/lifecycle"
	"lending-engine/pkg/amortize"
)

type LoanHandler struct{ uc *lifecycle.Usecase }

func NewLoanHandler(uc *lifecycle.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type submitLoanReq struct {
	UserID               string          `json:"user_id"                validate:"required"`
	ProductCode          string          `json:"product_code"           validate:"required"`
	Principal            string          `json:"principal"              validate:"required,money"`
	TermMonths           int             `json:"term_months"            validate:"required,gt=0"`
	DestinationAccountID uint64          `json:"destination_account_id" validate:"required"`
	ConsentTerms         bool            `json:"consent_terms"`
	ConsentDataSharing   bool            `json:"consent_data_sharing"`
	IdentityVerified     bool            `json:"identity_verified"`
	Details              json.RawMessage `json:"details"`
}

func (h *LoanHandler) SubmitLoan(c echo.Context) error {
	var req submitLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	principal, err := decimal.NewFromString(req.Principal)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "principal", Message: "must be a decimal amount"}},
		})
	}

	dto, err := h.uc.Submit(c.Request().Context(), lifecycle.SubmitInput{
		UserID:               req.UserID,
		ProductCode:          req.ProductCode,
		Principal:            principal,
		TermMonths:           req.TermMonths,
		DestinationAccountID: req.DestinationAccountID,
		ConsentTerms:         req.ConsentTerms,
		ConsentDataSharing:   req.ConsentDataSharing,
		IdentityVerified:     req.IdentityVerified,
		Details:              req.Details,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type approveLoanReq struct {
	ApprovedPrincipal string `json:"approved_principal" validate:"required,money"`
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	var req approveLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	principal, err := decimal.NewFromString(req.ApprovedPrincipal)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "approved_principal", Message: "must be a decimal amount"}},
		})
	}

	dto, err := h.uc.Approve(c.Request().Context(), c.Param("reference"), principal)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type declineLoanReq struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *LoanHandler) DeclineLoan(c echo.Context) error {
	var req declineLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Decline(c.Request().Context(), c.Param("reference"), req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DisburseLoan(c echo.Context) error {
	dto, err := h.uc.Disburse(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// GetSchedule previews the declining-balance split of upcoming installments.
// Display only; the ledger stays authoritative.
func (h *LoanHandler) GetSchedule(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return writeError(c, err)
	}

	months := dto.TermMonths
	if raw := c.QueryParam("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation failed",
				Details: []FieldError{{Field: "months", Message: "must be a positive integer"}},
			})
		}
		months = n
	}

	principal := dto.RequestedPrincipal
	if dto.ApprovedPrincipal != nil {
		principal = *dto.ApprovedPrincipal
	}
	periods := amortize.PreviewSchedule(principal, dto.AnnualRatePercent, dto.TermMonths, months)
	return c.JSON(http.StatusOK, map[string]any{
		"reference":       dto.Reference,
		"monthly_payment": dto.MonthlyPayment,
		"total_interest":  amortize.TotalInterest(dto.MonthlyPayment, dto.TermMonths, principal).Round(2),
		"periods":         periods,
	})
}
