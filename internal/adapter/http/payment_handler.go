package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"lending-engine/internal/usecase/reconcile"
)

type PaymentHandler struct{ uc *reconcile.Usecase }

func NewPaymentHandler(uc *reconcile.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type applyPaymentReq struct {
	Amount          string `json:"amount"            validate:"required,money"`
	SourceAccountID uint64 `json:"source_account_id" validate:"required"`
}

func (h *PaymentHandler) ApplyPayment(c echo.Context) error {
	var req applyPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "amount", Message: "must be a decimal amount"}},
		})
	}

	res, err := h.uc.ApplyPayment(c.Request().Context(), c.Param("reference"), amount, req.SourceAccountID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	rows, err := h.uc.History(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"payments": rows})
}
